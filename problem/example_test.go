package problem_test

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/drblury/apiproblem/problem"
)

func ExampleNew() {
	p := problem.New(http.StatusNotFound, problem.Text("order 42 does not exist"))

	body, _ := p.MarshalJSON()
	fmt.Println(string(body))

	// Output:
	// {"detail":"order 42 does not exist","status":404,"title":"Not Found","type":"http://www.w3.org/Protocols/rfc2616/rfc2616-sec10.html"}
}

func ExampleNew_additionalFields() {
	p := problem.New("400", problem.Text("name is required"),
		problem.WithType("https://api.example.com/problems/validation"),
		problem.WithTitle("Validation failed"),
		problem.WithAdditional(map[string]any{
			"field": "name",
			"title": "ignored",
		}),
	)

	payload := p.ToMap()
	fmt.Println(payload["title"])
	fmt.Println(payload["field"])

	// Output:
	// Validation failed
	// name
}

func ExampleFromError() {
	err := problem.NewError(http.StatusConflict, "order already shipped").
		WithTitle("Order locked").
		WithAdditionalDetails(map[string]any{"order": 42})

	p := problem.New(http.StatusInternalServerError, problem.FromError(err))
	payload := p.ToMap()

	fmt.Println(payload["status"])
	fmt.Println(payload["title"])
	fmt.Println(payload["detail"])
	fmt.Println(payload["order"])

	// Output:
	// 409
	// Order locked
	// order already shipped
	// 42
}

func ExampleProblem_SetIncludeStackTrace() {
	cause := errors.New("connection refused")
	err := problem.Wrap(cause, http.StatusBadGateway, "inventory lookup failed")

	p := problem.New(http.StatusInternalServerError, problem.FromError(err)).
		SetIncludeStackTrace(true)
	payload := p.ToMap()

	stack := payload["exception_stack"].([]problem.Cause)
	fmt.Println(payload["detail"])
	fmt.Println(len(stack), stack[0].Message)

	// Output:
	// inventory lookup failed
	// 1 connection refused
}

func ExampleProblem_Get() {
	p := problem.New(http.StatusTooManyRequests, problem.Text("slow down"),
		problem.WithAdditional(map[string]any{"RetryAfter": 30}),
	)

	title, _ := p.Get("Title")
	retry, _ := p.Get("retryafter")
	_, err := p.Get("missing")

	fmt.Println(title)
	fmt.Println(retry)
	fmt.Println(err)
	fmt.Println(errors.Is(err, problem.ErrInvalidProperty))

	// Output:
	// Too Many Requests
	// 30
	// invalid property name "missing"
	// true
}
