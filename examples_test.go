package nddiff

import (
	"encoding/json"
	"fmt"
)

func Example() {
	// start with two slightly different json documents
	aJSON := []byte(`{"one": [5, 7]}`)
	bJSON := []byte(`{"one": [5], "two": 2}`)

	// unmarshal the data into generic interfaces
	var a, b interface{}
	if err := json.Unmarshal(aJSON, &a); err != nil {
		panic(err)
	}
	if err := json.Unmarshal(bJSON, &b); err != nil {
		panic(err)
	}

	// diff the documents, keeping unchanged items out of the output
	diff := Diff(a, b, OptionOmitUnchanged())

	// a diff is plain data, any generic encoder can serialize it
	output, err := json.Marshal(diff)
	if err != nil {
		panic(err)
	}

	fmt.Println(string(output))
	// Output:
	// {"D":{"one":{"D":[{"I":1,"R":7}]},"two":{"A":2}}}
}

func ExamplePatch() {
	var target interface{}
	if err := json.Unmarshal([]byte(`{"one": [5, 7]}`), &target); err != nil {
		panic(err)
	}

	// a diff previously computed and shipped as json
	var diff map[string]interface{}
	diffJSON := []byte(`{"D":{"one":{"D":[{"I":1,"R":7}]},"two":{"A":2}}}`)
	if err := json.Unmarshal(diffJSON, &diff); err != nil {
		panic(err)
	}

	patched, err := Patch(target, diff)
	if err != nil {
		panic(err)
	}

	output, err := json.Marshal(patched)
	if err != nil {
		panic(err)
	}

	fmt.Println(string(output))
	// Output:
	// {"one":[5],"two":2}
}

func ExampleFormatPretty() {
	var a, b interface{}
	if err := json.Unmarshal([]byte(`{"one": [5, 7], "two": 2}`), &a); err != nil {
		panic(err)
	}
	if err := json.Unmarshal([]byte(`{"one": [5], "two": 22}`), &b); err != nil {
		panic(err)
	}

	report, err := FormatPrettyString(Diff(a, b, OptionOmitUnchanged()), false)
	if err != nil {
		panic(err)
	}

	fmt.Print(report)
	// Output:
	//   one:
	// -   [1]: 7
	// - two: 2
	// + two: 22
}
