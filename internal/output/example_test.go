package output_test

import (
	"fmt"

	"github.com/blackwell-systems/camusage/internal/output"
	"github.com/blackwell-systems/camusage/internal/present"
)

func ExampleRenderSummary() {
	fmt.Print(output.RenderSummary(present.Summary{Total: 2, Active: 1, Packaged: 1, Desktop: 1}))
	// Output: 2 apps · 1 active · 1 packaged · 1 desktop
}

func ExampleRenderRowTable() {
	rows := []present.DisplayRow{
		{Kind: "Packaged", App: "Contoso.Camera", Active: "Yes", LastStart: "2024-01-15 10:30:00"},
	}
	fmt.Print(output.RenderRowTable(rows, output.TableOptions{}))
	// Output:
	// Kind      App                          EXE                                          Active  Last Start           Last Stop
	// ────────────────────────────────────────────────────────────────────────────────────────────────────────────────────────────────────
	// Packaged  Contoso.Camera                                                            Yes     2024-01-15 10:30:00
}
