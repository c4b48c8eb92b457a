package layout_test

import (
	"fmt"

	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/text"
	"github.com/matzehuels/mindmap/pkg/tree"
)

func ExampleRun() {
	data := map[string]any{
		"topic": "Root",
		"children": []any{
			map[string]any{"topic": "A"},
			map[string]any{"topic": "B"},
			map[string]any{"topic": "C"},
		},
	}

	meter := text.NewMeter(text.CellMeasurer{Ratio: 0.5})
	ctx, _ := layout.NewContext(layout.Options{}, meter, nil)
	t, err := layout.Run(data, ctx)
	if err != nil {
		fmt.Println(err)
		return
	}
	t.Walk(nil, func(n *tree.Node) {
		fmt.Printf("%s %.1f,%.1f %vx%v\n", n.Topic, n.X, n.Y, n.Width, n.Height)
	})
	// Output:
	// Root 0.0,0.0 80x50
	// A 140.0,-26.5 40x37
	// B -140.0,0.0 40x37
	// C 140.0,26.5 40x37
}

func ExampleAdapt() {
	s := layout.Adapt(layout.DefaultGaps, 1, tree.ModeAuto, 6)
	fmt.Println(s.Branch, s.Sub, s.Sibling)
	// Output: 36 18 16
}
