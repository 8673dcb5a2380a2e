package view

import "testing"

func TestEmbeddedJSON(t *testing.T) {
	markup := `<section>
<script type="application/json" id="cfg">[{"id":"a"},{"id":"b"}]</script>
<script type="application/json" id="broken">[{"id":</script>
<div id="featured"><span>x</span></div>
</section>`

	var got []struct{ ID string }
	if !EmbeddedJSON(markup, "cfg", &got) {
		t.Fatal("valid blob not decoded")
	}
	if len(got) != 2 || got[1].ID != "b" {
		t.Errorf("decoded = %+v", got)
	}

	var broken []any
	if EmbeddedJSON(markup, "broken", &broken) {
		t.Error("malformed blob reported as decoded")
	}
	if EmbeddedJSON(markup, "missing", &broken) {
		t.Error("missing blob reported as decoded")
	}

	if !HasElement(markup, "featured") || HasElement(markup, "nope") {
		t.Error("HasElement mismatch")
	}
	if text, ok := EmbeddedText(markup, "featured"); !ok || text != "x" {
		t.Errorf("EmbeddedText = %q, %v", text, ok)
	}
}
