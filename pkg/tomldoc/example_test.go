package tomldoc_test

import (
	"fmt"

	"github.com/matzehuels/cargo-abc/pkg/tomldoc"
)

func ExampleTable_Sort() {
	src := `[package]
name = "demo" # kept as is

[dependencies]
tokio = { version = "1", features = ["full"] }
# error handling
anyhow = "1"
serde = "1"
`
	doc, err := tomldoc.Parse([]byte(src))
	if err != nil {
		panic(err)
	}
	if t, ok := doc.Table("dependencies"); ok {
		t.Sort()
		fmt.Println(t.Keys())
	}
	fmt.Print(string(doc.Bytes()))
	// Output:
	// [anyhow serde tokio]
	// [package]
	// name = "demo" # kept as is
	//
	// [dependencies]
	// # error handling
	// anyhow = "1"
	// serde = "1"
	// tokio = { version = "1", features = ["full"] }
}
