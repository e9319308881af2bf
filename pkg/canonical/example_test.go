package canonical_test

import (
	"fmt"

	"github.com/matzehuels/gridraw/pkg/canonical"
	"github.com/matzehuels/gridraw/pkg/planar"
)

func ExampleOrder() {
	emb, _ := planar.GenerateStacked(4, 0)
	ord, err := canonical.Order(emb, 1, 2, 4)
	if err != nil {
		panic(err)
	}
	for _, e := range ord {
		fmt.Println(e)
	}
	// Output:
	// 1[]
	// 2[]
	// 3[1 2]
	// 4[1 3 2]
}

func ExampleValidate() {
	err := canonical.Validate(planar.ReferenceGraph(), canonical.Reference())
	fmt.Println(err)
	// Output:
	// <nil>
}
