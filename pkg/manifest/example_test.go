package manifest_test

import (
	"fmt"

	"github.com/matzehuels/cargo-abc/pkg/manifest"
)

func ExampleDiff() {
	before := "[dependencies]\nserde = \"1\"\nanyhow = \"1\"\n"
	after := "[dependencies]\nanyhow = \"1\"\nserde = \"1\"\n"
	out := manifest.Diff("Cargo.toml", []byte(before), []byte(after))
	fmt.Println(out != "")
	// Output: true
}
