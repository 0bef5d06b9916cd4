package cloud_test

import (
	"fmt"

	"github.com/matzehuels/wordsphere/pkg/cloud"
)

func ExampleLayout() {
	words := []cloud.WordItem{
		{Word: "golang", Weight: 0.8},
		{Word: "sphere", Weight: 0.2},
	}

	for _, v := range cloud.Layout(words, cloud.DefaultOptions()) {
		fmt.Printf("%s size=%.2f color=%s\n", v.Word, v.FontSize, v.Color.CSS())
	}
	// Output:
	// golang size=3.00 color=hsl(110, 90%, 60%)
	// sphere size=1.50 color=hsl(215, 90%, 60%)
}
