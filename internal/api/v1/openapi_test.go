package apiv1

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The served spec file must stay valid OpenAPI and keep describing the
// routes RegisterHandlers actually attaches.
func TestOpenAPISpecMatchesRoutes(t *testing.T) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile("../../../public/docs/v1/openapi.yml")
	require.NoError(t, err)

	require.NoError(t, doc.Validate(loader.Context))

	for _, path := range []string{
		"/ping",
		"/invoice/pdf",
		"/invoice/email",
		"/member-invoices/{id}/paid",
	} {
		assert.NotNil(t, doc.Paths.Find(path), "spec is missing %s", path)
	}

	// The write endpoints are POST only
	for _, path := range []string{"/invoice/pdf", "/invoice/email", "/member-invoices/{id}/paid"} {
		item := doc.Paths.Find(path)
		require.NotNil(t, item)
		assert.NotNil(t, item.Post, "%s must document POST", path)
		assert.Nil(t, item.Get, "%s must not document GET", path)
	}
}
