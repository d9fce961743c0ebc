package doxygen

import (
	"strings"
	"testing"

	"doxy2man/internal/port"
)

func newTestBuilder(doc string) *Builder {
	return NewBuilder(NewEventSource(strings.NewReader(doc)))
}

// enter advances the builder past the open event of the named tag.
func enter(t *testing.T, b *Builder, tag string) port.Event {
	t.Helper()
	for {
		ev, err := b.src.Next()
		if err != nil {
			t.Fatalf("unexpected stream error: %v", err)
		}
		if ev.Kind == port.EventStart && ev.Name == tag {
			return ev
		}
		if ev.Kind == port.EventEOF {
			t.Fatalf("tag %s not found", tag)
		}
	}
}

func TestCollectText_Emphasis(t *testing.T) {
	b := newTestBuilder(`<para>an <emphasis>important</emphasis> word</para>`)
	enter(t, b, "para")

	got, err := b.collectText("para")
	if err != nil {
		t.Fatalf("collectText: %v", err)
	}
	want := `an \fBimportant\fR word`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCollectText_ProgramListing(t *testing.T) {
	b := newTestBuilder(`<para><programlisting><codeline><highlight class="normal">x<sp/>=<sp/>1;</highlight></codeline></programlisting></para>`)
	enter(t, b, "para")

	got, err := b.collectText("para")
	if err != nil {
		t.Fatalf("collectText: %v", err)
	}
	if !strings.Contains(got, ".nf\n") {
		t.Errorf("expected literal block start, got %q", got)
	}
	if !strings.Contains(got, "x = 1;") {
		t.Errorf("expected spaced code text, got %q", got)
	}
	if !strings.Contains(got, "\n.fi") {
		t.Errorf("expected literal block end, got %q", got)
	}
}

func TestCollectText_HighlightKeyword(t *testing.T) {
	b := newTestBuilder(`<para><highlight class="keyword">static</highlight></para>`)
	enter(t, b, "para")

	got, err := b.collectText("para")
	if err != nil {
		t.Fatalf("collectText: %v", err)
	}
	if got != `\fBstatic\fR` {
		t.Errorf("expected bolded keyword, got %q", got)
	}
}

func TestCollectText_ItemizedList(t *testing.T) {
	b := newTestBuilder(`<para><itemizedlist><listitem>first</listitem><listitem>second</listitem></itemizedlist></para>`)
	enter(t, b, "para")

	got, err := b.collectText("para")
	if err != nil {
		t.Fatalf("collectText: %v", err)
	}
	if !strings.Contains(got, "\n* first") || !strings.Contains(got, "\n* second") {
		t.Errorf("expected bullet items, got %q", got)
	}
}

func TestCollectText_UnknownTagTextStillCaptured(t *testing.T) {
	b := newTestBuilder(`<para>before <mystery>inside</mystery> after</para>`)
	enter(t, b, "para")

	got, err := b.collectText("para")
	if err != nil {
		t.Fatalf("collectText: %v", err)
	}
	if got != "before inside after" {
		t.Errorf("expected unknown tag to pass text through, got %q", got)
	}
}

func TestCollectText_XrefDiscarded(t *testing.T) {
	b := newTestBuilder(`<para>keep<xrefsect><xrefdescription>drop</xrefdescription></xrefsect></para>`)
	enter(t, b, "para")

	got, err := b.collectText("para")
	if err != nil {
		t.Fatalf("collectText: %v", err)
	}
	if got != "keep" {
		t.Errorf("expected xref content discarded, got %q", got)
	}
}

func TestCollectText_TrimsTrailingWhitespaceOnly(t *testing.T) {
	b := newTestBuilder("<para>  padded text \n</para>")
	enter(t, b, "para")

	got, err := b.collectText("para")
	if err != nil {
		t.Fatalf("collectText: %v", err)
	}
	if got != "  padded text" {
		t.Errorf("expected only trailing trim, got %q", got)
	}
}

func TestCollectTextAndRef(t *testing.T) {
	b := newTestBuilder(`<type><ref refid="structfoo" kindref="compound">struct foo</ref> *</type>`)
	enter(t, b, "type")

	text, refid, err := b.collectTextAndRef("type")
	if err != nil {
		t.Fatalf("collectTextAndRef: %v", err)
	}
	if text != "struct foo *" {
		t.Errorf("expected full type text, got %q", text)
	}
	if refid != "structfoo" {
		t.Errorf("expected refid structfoo, got %q", refid)
	}
}

func TestCollectText_TruncatedStream(t *testing.T) {
	b := newTestBuilder(`<para>cut off mid`)
	enter(t, b, "para")

	if _, err := b.collectText("para"); err == nil {
		t.Error("expected error for truncated stream")
	}
}
