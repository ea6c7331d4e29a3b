package main

import (
	"fmt"
	"strings"

	"github.com/cooklang/cooklang"
	"github.com/cooklang/cooklang/analysis"
	"github.com/cooklang/cooklang/quantity"
)

// displayRecipe prints a resolved recipe model in the same terse,
// emoji-tagged report the teacher's original main.go produced, generalized
// to the richer component/relation model the analyzer now builds.
func displayRecipe(filename string, result cooklang.Result) {
	fmt.Printf("📄 Recipe: %s\n", filename)
	fmt.Println(strings.Repeat("=", 40))

	content := result.Content
	if len(content.Metadata) > 0 {
		fmt.Println("📋 Metadata:")
		for k, v := range content.Metadata {
			fmt.Printf("  %s: %s\n", k, v)
		}
		fmt.Println()
	}

	if len(content.Ingredients) > 0 {
		fmt.Println("🥕 Ingredients:")
		for i, ing := range content.Ingredients {
			fmt.Printf("  [%d] %s%s\n", i, ing.Name, quantitySuffix(ing.Quantity))
		}
		fmt.Println()
	}

	if len(content.Cookware) > 0 {
		fmt.Println("🍳 Cookware:")
		for i, cw := range content.Cookware {
			fmt.Printf("  [%d] %s%s\n", i, cw.Name, quantitySuffix(cw.Quantity))
		}
		fmt.Println()
	}

	if len(content.Timers) > 0 {
		fmt.Println("⏲️  Timers:")
		for i, tm := range content.Timers {
			name := ""
			if tm.Name != nil {
				name = *tm.Name
			}
			fmt.Printf("  [%d] %s%s\n", i, name, quantitySuffix(tm.Quantity))
		}
		fmt.Println()
	}

	fmt.Println("📝 Steps:")
	for _, sec := range content.Sections {
		if sec.Name != nil {
			fmt.Printf("-- %s --\n", *sec.Name)
		}
		for _, step := range sec.Steps {
			if step.Number != nil {
				fmt.Printf("%d. ", *step.Number)
			}
			fmt.Println(stepText(step, content))
		}
	}
}

// stepText joins a step's items back into readable text, naming resolved
// components instead of re-printing their source sigils.
func stepText(step analysis.Step, content analysis.RecipeContent) string {
	var b strings.Builder
	for _, item := range step.Items {
		switch item.Kind {
		case analysis.ItemText:
			b.WriteString(item.Text)
		case analysis.ItemInlineQuantity:
			b.WriteString(content.InlineQuantities[item.InlineQuantity].Quantity.String())
		case analysis.ItemComponent:
			switch item.ComponentKind {
			case analysis.ComponentIngredient:
				b.WriteString(content.Ingredients[item.ComponentIndex].Name)
			case analysis.ComponentCookware:
				b.WriteString(content.Cookware[item.ComponentIndex].Name)
			case analysis.ComponentTimer:
				if n := content.Timers[item.ComponentIndex].Name; n != nil {
					b.WriteString(*n)
				}
			}
		}
	}
	return b.String()
}

func quantitySuffix(q *quantity.Quantity) string {
	if q == nil {
		return ""
	}
	s := q.Value.String()
	if q.Unit != nil {
		s += " " + q.Unit.String()
	}
	return " (" + s + ")"
}
