package openapi

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"gopkg.in/yaml.v3"
)

// Document describes the signup API so clients and gateways can discover the
// two operations without reading source.
func Document(title, version string) *openapi3.T {
	spec := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       title,
			Version:     version,
			Description: "Email one-time-passcode account provisioning",
		},
		Paths: openapi3.NewPaths(),
	}

	issueBody := openapi3.NewObjectSchema().
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("displayName", openapi3.NewStringSchema()).
		WithProperty("password", openapi3.NewStringSchema().WithMinLength(6))
	issueBody.Required = []string{"email", "password"}

	verifyBody := openapi3.NewObjectSchema().
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("code", openapi3.NewStringSchema().WithPattern(`^\d{6}$`))
	verifyBody.Required = []string{"email", "code"}

	successSchema := openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("accountId", openapi3.NewStringSchema())

	errorSchema := openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewStringSchema())

	spec.Paths.Set("/otp/issue", &openapi3.PathItem{
		Post: &openapi3.Operation{
			OperationID: "issueChallenge",
			Summary:     "Send a verification code to an email address",
			Description: "Stores a pending signup challenge and emails its 6-digit code. Calling again for the same email supersedes the earlier challenge (resend). The code is never returned in the response.",
			RequestBody: jsonRequestBody(issueBody),
			Responses:   jsonResponses(successSchema, errorSchema),
		},
	})

	spec.Paths.Set("/otp/verify", &openapi3.PathItem{
		Post: &openapi3.Operation{
			OperationID: "verifyChallenge",
			Summary:     "Verify a code and create the account",
			Description: "Consumes the pending challenge exactly once and creates the account from the signup data captured at issue time.",
			RequestBody: jsonRequestBody(verifyBody),
			Responses:   jsonResponses(successSchema, errorSchema),
		},
	})

	return spec
}

func jsonRequestBody(schema *openapi3.Schema) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithJSONSchema(schema),
	}
}

func jsonResponses(success, failure *openapi3.Schema) *openapi3.Responses {
	responses := openapi3.NewResponses()
	responses.Set("200", &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription("Success").
			WithJSONSchema(success),
	})
	responses.Set("400", &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription("Validation or verification failure").
			WithJSONSchema(failure),
	})
	responses.Set("default", &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription("Unexpected error").
			WithJSONSchema(failure),
	})
	return responses
}

// Register serves the document at /openapi.json and /openapi.yaml.
func Register(e *echo.Echo, spec *openapi3.T) {
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, spec)
	})

	e.GET("/openapi.yaml", func(c echo.Context) error {
		data, err := spec.MarshalJSON()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to render spec")
		}

		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to render spec")
		}

		out, err := yaml.Marshal(doc)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to render spec")
		}

		return c.Blob(http.StatusOK, "application/yaml", out)
	})
}
