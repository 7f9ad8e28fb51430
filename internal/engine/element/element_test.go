package element

import "testing"

func TestNewTextRun(t *testing.T) {
	e := NewTextRun("hello")
	if e.Kind() != Text {
		t.Errorf("Kind() = %v, want Text", e.Kind())
	}
	if e.IsContainer() {
		t.Error("text run reported as container")
	}
	if e.Text() != "hello" {
		t.Errorf("Text() = %q, want %q", e.Text(), "hello")
	}
	if e.Len() != 5 {
		t.Errorf("Len() = %d, want 5", e.Len())
	}
}

func TestTextRunUnicodeLen(t *testing.T) {
	e := NewTextRun("naïve — ☃")
	if got := e.Len(); got != 9 {
		t.Errorf("Len() = %d, want 9 (rune count, not bytes)", got)
	}
}

func TestNewContainer(t *testing.T) {
	e := NewContainer(Bold, NewTextRun("ab"), NewTextRun("cd"))
	if !e.IsContainer() {
		t.Fatal("bold container reported as leaf")
	}
	if e.ChildCount() != 2 {
		t.Errorf("ChildCount() = %d, want 2", e.ChildCount())
	}
	if e.Len() != 4 {
		t.Errorf("Len() = %d, want 4", e.Len())
	}
	if e.PlainText() != "abcd" {
		t.Errorf("PlainText() = %q, want %q", e.PlainText(), "abcd")
	}
}

func TestNewContainerTextKind(t *testing.T) {
	e := NewContainer(Text, NewTextRun("x"))
	if e.IsContainer() {
		t.Error("NewContainer(Text) should yield a leaf run")
	}
	if e.Len() != 0 {
		t.Errorf("Len() = %d, want 0", e.Len())
	}
}

func TestNestedLen(t *testing.T) {
	// b(i("ab"), "cd") + "ef"
	inner := NewContainer(Italic, NewTextRun("ab"))
	bold := NewContainer(Bold, inner, NewTextRun("cd"))
	seq := []*Element{bold, NewTextRun("ef")}
	if got := TotalLen(seq); got != 6 {
		t.Errorf("TotalLen = %d, want 6", got)
	}
	if got := PlainText(seq); got != "abcdef" {
		t.Errorf("PlainText = %q, want %q", got, "abcdef")
	}
}

func TestChildAccess(t *testing.T) {
	e := NewContainer(Underline, NewTextRun("a"), NewTextRun("b"))
	if c := e.ChildAt(1); c == nil || c.Text() != "b" {
		t.Errorf("ChildAt(1) = %v, want run %q", c, "b")
	}
	if c := e.ChildAt(2); c != nil {
		t.Errorf("ChildAt(2) = %v, want nil", c)
	}
	if c := e.ChildAt(-1); c != nil {
		t.Errorf("ChildAt(-1) = %v, want nil", c)
	}
	removed := e.RemoveChild(0)
	if removed == nil || removed.Text() != "a" {
		t.Fatalf("RemoveChild(0) = %v, want run %q", removed, "a")
	}
	if e.ChildCount() != 1 {
		t.Errorf("ChildCount() after remove = %d, want 1", e.ChildCount())
	}
}

func TestAppendChildLeafNoop(t *testing.T) {
	leaf := NewTextRun("x")
	leaf.AppendChild(NewTextRun("y"))
	if leaf.ChildCount() != 0 {
		t.Error("AppendChild on a leaf should be a no-op")
	}
}

func TestClone(t *testing.T) {
	orig := NewContainer(Bold, NewStyledTextRun("ab", "emph"), NewContainer(Italic, NewTextRun("cd")))
	cp := orig.Clone()
	cp.ChildAt(0).SetText("XY")
	cp.ChildAt(1).ChildAt(0).SetText("ZW")
	if orig.PlainText() != "abcd" {
		t.Errorf("original mutated through clone: %q", orig.PlainText())
	}
	if cp.PlainText() != "XYZW" {
		t.Errorf("clone PlainText = %q, want %q", cp.PlainText(), "XYZW")
	}
	if cp.ChildAt(0).StyleID() != "emph" {
		t.Errorf("clone dropped style id, got %q", cp.ChildAt(0).StyleID())
	}
}

func TestKindTags(t *testing.T) {
	tags := map[Kind]string{
		Text:          "t",
		Bold:          "b",
		Italic:        "i",
		Underline:     "u",
		Strikethrough: "s",
		Subscript:     "sub",
		Superscript:   "sup",
	}
	for k, tag := range tags {
		if got := k.Tag(); got != tag {
			t.Errorf("%v.Tag() = %q, want %q", k, got, tag)
		}
	}
	for k, tag := range tags {
		got, ok := KindForTag(tag)
		if tag == "t" {
			if ok {
				t.Error("KindForTag(\"t\") should report false")
			}
			continue
		}
		if !ok || got != k {
			t.Errorf("KindForTag(%q) = %v, %v, want %v", tag, got, ok, k)
		}
	}
	if _, ok := KindForTag("blink"); ok {
		t.Error("KindForTag accepted unknown tag")
	}
}

func TestKindSet(t *testing.T) {
	var s KindSet
	s = s.With(Bold).With(Subscript)
	if !s.Has(Bold) || !s.Has(Subscript) {
		t.Error("set missing added kinds")
	}
	if s.Has(Italic) {
		t.Error("set reports kind that was never added")
	}
	if s.With(Text) != s {
		t.Error("With(Text) should not change the set")
	}
	if s.Has(Text) {
		t.Error("Has(Text) should always be false")
	}
}
