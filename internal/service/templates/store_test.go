package templates

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestDefaultStoreHasEveryReplyTemplate(t *testing.T) {
	store := Default()
	names := []string{
		"hello-firsttime.tmpl",
		"hello.tmpl",
		"help.tmpl",
		"vcard.tmpl",
		"store.tmpl",
		"retrieve.tmpl",
		"retrieve-similarfound.tmpl",
		"retrieve-notfound.tmpl",
	}

	for _, name := range names {
		text, err := store.Load(name)
		if err != nil {
			t.Fatalf("Load(%s) err: %v", name, err)
		}
		if strings.TrimSpace(text) == "" {
			t.Fatalf("template %s is empty", name)
		}
	}
}

func TestLoadMissingTemplate(t *testing.T) {
	store := NewStore(fstest.MapFS{})
	if _, err := store.Load("nope.tmpl"); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestRenderEscapesDoubleBracesOnly(t *testing.T) {
	out, err := Render("{{name}} {{{url}}}", map[string]string{
		"name": "AT&T",
		"url":  "https://app.rosa.bot/#/set?arid=abc&x=1",
	})
	if err != nil {
		t.Fatalf("Render err: %v", err)
	}
	if out != "AT&amp;T https://app.rosa.bot/#/set?arid=abc&x=1" {
		t.Fatalf("unexpected render: %q", out)
	}
}

func TestStoreTemplateRendersURL(t *testing.T) {
	text, err := Default().Load("store.tmpl")
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	out, err := Render(text, map[string]string{
		"rawApplication": "Netflix",
		"url":            "https://app.rosa.bot/#/set?arid=abc",
	})
	if err != nil {
		t.Fatalf("Render err: %v", err)
	}
	if !strings.Contains(out, "Netflix") || !strings.Contains(out, "https://app.rosa.bot/#/set?arid=abc") {
		t.Fatalf("unexpected render: %q", out)
	}
}
