package jsonutil_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/drblury/apiproblem/jsonutil"
)

func Example() {
	payload := map[string]any{
		"type":   "about:blank",
		"title":  "Not Found",
		"status": 404,
		"detail": "order 42 does not exist",
	}

	data, _ := jsonutil.Marshal(payload)
	fmt.Println(string(data))

	var decoded map[string]any
	_ = jsonutil.Unmarshal(data, &decoded)
	fmt.Println(decoded["status"])

	// Output:
	// {"detail":"order 42 does not exist","status":404,"title":"Not Found","type":"about:blank"}
	// 404
}

func ExampleMarshalIndent() {
	type cause struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}

	data, err := jsonutil.MarshalIndent([]cause{{Code: 502, Message: "upstream failed"}}, "", "  ")
	if err != nil {
		fmt.Println("marshal error:", err)
		return
	}

	fmt.Println(strings.TrimSpace(string(data)))

	// Output:
	// [
	//   {
	//     "code": 502,
	//     "message": "upstream failed"
	//   }
	// ]
}

func ExampleEncode_stream() {
	type frame struct {
		Function string `json:"function"`
		Line     int    `json:"line"`
	}

	buf := &bytes.Buffer{}
	if err := jsonutil.Encode(buf, frame{Function: "main.run", Line: 12}); err != nil {
		fmt.Println("encode error:", err)
		return
	}
	fmt.Println(strings.TrimSpace(buf.String()))

	var decoded frame
	if err := jsonutil.Decode(bytes.NewReader(buf.Bytes()), &decoded); err != nil {
		fmt.Println("decode error:", err)
		return
	}
	fmt.Printf("%s %d\n", decoded.Function, decoded.Line)

	// Output:
	// {"function":"main.run","line":12}
	// main.run 12
}
