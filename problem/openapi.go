package problem

import "github.com/getkin/kin-openapi/openapi3"

// SchemaName is the component name under which OpenAPISchema is registered.
const SchemaName = "Problem"

// OpenAPISchema describes the serialized payload: the four required members
// plus arbitrary additional members.
func OpenAPISchema() *openapi3.Schema {
	allowExtra := true

	trace := openapi3.NewArraySchema().WithItems(
		openapi3.NewObjectSchema().
			WithProperty("function", openapi3.NewStringSchema()).
			WithProperty("file", openapi3.NewStringSchema()).
			WithProperty("line", openapi3.NewIntegerSchema()),
	)

	cause := openapi3.NewObjectSchema().
		WithProperty("code", openapi3.NewIntegerSchema()).
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("trace", trace)

	schema := openapi3.NewObjectSchema().
		WithProperty(KeyType, openapi3.NewStringSchema().WithFormat("uri-reference")).
		WithProperty(KeyTitle, openapi3.NewStringSchema()).
		WithProperty(KeyStatus, openapi3.NewIntegerSchema()).
		WithProperty(KeyDetail, openapi3.NewStringSchema()).
		WithProperty(KeyTrace, trace).
		WithProperty(KeyExceptionStack, openapi3.NewArraySchema().WithItems(cause))
	schema.Required = []string{KeyType, KeyTitle, KeyStatus, KeyDetail}
	schema.AdditionalProperties = openapi3.AdditionalProperties{Has: &allowExtra}
	schema.Description = "Problem details for HTTP APIs."
	return schema
}

// OpenAPISchemaRef returns a reference to the component registered under
// SchemaName, with the schema inlined as its value.
func OpenAPISchemaRef() *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+SchemaName, OpenAPISchema())
}

// OpenAPIResponse describes a response carrying a problem payload.
func OpenAPIResponse(description string) *openapi3.ResponseRef {
	content := openapi3.NewContentWithSchemaRef(OpenAPISchemaRef(), []string{ContentType})
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(description).WithContent(content),
	}
}
