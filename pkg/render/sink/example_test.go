package sink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/mondrian/pkg/core/composition"
	"github.com/matzehuels/mondrian/pkg/render/sink"
)

func ExampleRenderSVG() {
	c := composition.Composition{
		Label:  composition.DocumentLabel(100, 100),
		Width:  100,
		Height: 100,
		Primitives: []composition.Primitive{
			composition.VerticalLine(1, 50, 100, 3, "#000000"),
		},
	}
	svg := string(sink.RenderSVG(c, sink.WithoutLayer()))
	for _, line := range strings.Split(svg, "\n") {
		if strings.Contains(line, "<line") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// <line x1="50" y1="0" x2="50" y2="100" fill="none" stroke="#000000" stroke-width="3" stroke-linecap="square" inkscape:label="Vertical Line 1"/>
}
