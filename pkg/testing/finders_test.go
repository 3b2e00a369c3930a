package testing

import (
	"testing"

	"github.com/go-drift/mathview/pkg/core"
	"github.com/go-drift/mathview/pkg/widgets"
)

func pumpFinderTree(t *testing.T) *WidgetTester {
	t.Helper()
	tester := NewWidgetTesterWithT(t)
	tree := widgets.ErrorBoundary{
		WidgetKey: "boundary",
		ChildWidget: widgets.ColumnOf(
			widgets.Text{Content: "alpha"},
			widgets.Text{Content: "alphabet"},
			widgets.RowOf(
				widgets.Text{Content: "beta"},
			),
		),
	}
	if err := tester.PumpWidget(tree); err != nil {
		t.Fatalf("PumpWidget: %v", err)
	}
	return tester
}

func TestByText_ExactMatch(t *testing.T) {
	tester := pumpFinderTree(t)

	if got := tester.Find(ByText("alpha")).Count(); got != 1 {
		t.Errorf("ByText(alpha) matched %d elements, want 1", got)
	}
	if tester.Find(ByText("alp")).Exists() {
		t.Error("ByText should not match partial content")
	}
}

func TestByTextContaining_Substring(t *testing.T) {
	tester := pumpFinderTree(t)

	if got := tester.Find(ByTextContaining("alpha")).Count(); got != 2 {
		t.Errorf("ByTextContaining(alpha) matched %d elements, want 2", got)
	}
}

func TestByType_MatchesWidgets(t *testing.T) {
	tester := pumpFinderTree(t)

	if got := tester.Find(ByType[widgets.Text]()).Count(); got != 3 {
		t.Errorf("ByType[Text] matched %d elements, want 3", got)
	}
	if got := tester.Find(ByType[widgets.Column]()).Count(); got != 1 {
		t.Errorf("ByType[Column] matched %d elements, want 1", got)
	}
}

func TestByKey_MatchesWidgetKey(t *testing.T) {
	tester := pumpFinderTree(t)

	result := tester.Find(ByKey("boundary"))
	if result.Count() != 1 {
		t.Fatalf("ByKey(boundary) matched %d elements, want 1", result.Count())
	}
	if _, ok := result.Widget().(widgets.ErrorBoundary); !ok {
		t.Errorf("expected an ErrorBoundary widget, got %T", result.Widget())
	}
}

func TestByPredicate_ArbitraryMatch(t *testing.T) {
	tester := pumpFinderTree(t)

	long := tester.Find(ByPredicate(func(e core.Element) bool {
		text, ok := e.Widget().(widgets.Text)
		return ok && len(text.Content) > 5
	}))
	if long.Count() != 1 {
		t.Fatalf("predicate matched %d elements, want 1", long.Count())
	}
	if long.Widget().(widgets.Text).Content != "alphabet" {
		t.Errorf("unexpected match %v", long.Widget())
	}
}

func TestDescendant_ScopesSearch(t *testing.T) {
	tester := pumpFinderTree(t)

	inRow := tester.Find(Descendant(ByType[widgets.Row](), ByType[widgets.Text]()))
	if inRow.Count() != 1 {
		t.Fatalf("Descendant matched %d elements, want 1", inRow.Count())
	}
	if inRow.Widget().(widgets.Text).Content != "beta" {
		t.Errorf("unexpected descendant %v", inRow.Widget())
	}
}

func TestAncestor_FindsEnclosingWidget(t *testing.T) {
	tester := pumpFinderTree(t)

	enclosing := tester.Find(Ancestor(ByText("beta"), ByType[widgets.Row]()))
	if enclosing.Count() != 1 {
		t.Errorf("Ancestor matched %d elements, want 1", enclosing.Count())
	}
	column := tester.Find(Ancestor(ByText("beta"), ByType[widgets.Column]()))
	if column.Count() != 1 {
		t.Errorf("Ancestor via Column matched %d elements, want 1", column.Count())
	}
}

func TestFinderResult_Accessors(t *testing.T) {
	tester := pumpFinderTree(t)

	texts := tester.Find(ByType[widgets.Text]())
	if texts.FirstOrNil() == nil {
		t.Fatal("FirstOrNil returned nil for non-empty result")
	}
	if texts.At(2) == nil {
		t.Fatal("At(2) returned nil")
	}
	if texts.RenderObject() == nil {
		t.Error("expected a render object on a Text element")
	}

	missing := tester.Find(ByText("nope"))
	if missing.Exists() {
		t.Error("expected no match")
	}
	if missing.FirstOrNil() != nil {
		t.Error("FirstOrNil should be nil for empty result")
	}
}
