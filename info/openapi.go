package info

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/apiproblem/problem"
)

// Paths of the info endpoints relative to the mount prefix.
const (
	PathStatus  = "/status"
	PathHealthz = "/healthz"
	PathReadyz  = "/readyz"
	PathVersion = "/version"
	PathOpenAPI = "/openapi.json"
)

// NewOpenAPIDocument describes the info endpoints mounted below prefix. The
// Problem schema is registered as a component and referenced by every error
// response. Callers may add their own paths before serving the document.
func NewOpenAPIDocument(title, version, prefix string) *openapi3.T {
	prefix = strings.TrimRight(prefix, "/")

	probeSchema := openapi3.NewObjectSchema().
		WithProperty("status", openapi3.NewStringSchema()).
		WithProperty("details", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))
	probeSchema.Required = []string{"status"}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				problem.SchemaName: openapi3.NewSchemaRef("", problem.OpenAPISchema()),
			},
		},
	}

	probeResponse := jsonResponse("Probe state.", openapi3.NewSchemaRef("", probeSchema))
	anyObject := jsonResponse("Free form JSON object.", openapi3.NewObjectSchema().NewRef())

	doc.Paths.Set(prefix+PathStatus, getItem("getStatus", "Report that the service is up.", probeResponse, nil))
	doc.Paths.Set(prefix+PathHealthz, getItem("getHealthz", "Run the liveness checks.", probeResponse,
		map[int]string{http.StatusServiceUnavailable: "A liveness check failed."}))
	doc.Paths.Set(prefix+PathReadyz, getItem("getReadyz", "Run the readiness checks.", probeResponse,
		map[int]string{http.StatusServiceUnavailable: "A readiness check failed."}))
	doc.Paths.Set(prefix+PathVersion, getItem("getVersion", "Return build metadata.", anyObject, nil))
	doc.Paths.Set(prefix+PathOpenAPI, getItem("getOpenAPI", "Return this document.", anyObject,
		map[int]string{http.StatusInternalServerError: "The document could not be loaded."}))

	return doc
}

func getItem(operationID, summary string, ok *openapi3.ResponseRef, failures map[int]string) *openapi3.PathItem {
	responses := openapi3.NewResponses()
	responses.Set(strconv.Itoa(http.StatusOK), ok)
	for status, description := range failures {
		responses.Set(strconv.Itoa(status), problem.OpenAPIResponse(description))
	}
	responses.Set("default", problem.OpenAPIResponse("Unexpected error."))

	op := openapi3.NewOperation()
	op.OperationID = operationID
	op.Summary = summary
	op.Responses = responses
	return &openapi3.PathItem{Get: op}
}

func jsonResponse(description string, schema *openapi3.SchemaRef) *openapi3.ResponseRef {
	content := openapi3.NewContentWithJSONSchemaRef(schema)
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(description).WithContent(content),
	}
}
