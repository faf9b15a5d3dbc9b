package hxpanel

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRenderFlashesOOBEmpty(t *testing.T) {
	if got := RenderFlashesOOB(nil); got != "" {
		t.Errorf("RenderFlashesOOB(nil) = %q, want empty string", got)
	}
	if got := RenderFlashesOOB([]Flash{}); got != "" {
		t.Errorf("RenderFlashesOOB([]) = %q, want empty string", got)
	}
}

func TestRenderFlashesOOBSingle(t *testing.T) {
	result := RenderFlashesOOB([]Flash{
		{Level: FlashSuccess, Message: "Successfully subscribed to our newsletter!"},
	})

	for _, want := range []string{
		`id="toasts"`,
		`hx-swap-oob="beforeend"`,
		`class="toast toast-success"`,
		`data-auto-dismiss="5000"`,
		"Successfully subscribed to our newsletter!",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("missing %q in %s", want, result)
		}
	}
}

func TestRenderFlashesOOBMultiple(t *testing.T) {
	result := RenderFlashesOOB([]Flash{
		{Level: FlashSuccess, Message: "First"},
		{Level: FlashError, Message: "Second"},
		{Level: FlashWarning, Message: "Third"},
	})

	if strings.Count(result, `id="toasts"`) != 1 {
		t.Error("should have exactly one toasts container")
	}
	if strings.Count(result, `class="toast `) != 3 {
		t.Error("should have three toast elements")
	}
	if strings.Count(result, "<div") != strings.Count(result, "</div>") {
		t.Error("mismatched div tags")
	}
	if !(strings.Index(result, "First") < strings.Index(result, "Second") &&
		strings.Index(result, "Second") < strings.Index(result, "Third")) {
		t.Error("toasts out of order")
	}
}

func TestRenderFlashesOOBEscaping(t *testing.T) {
	result := RenderFlashesOOB([]Flash{
		{Level: "<bad>", Message: "<script>alert('xss')</script>"},
	})

	if strings.Contains(result, "<script>") || strings.Contains(result, "toast-<bad>") {
		t.Errorf("unescaped content: %s", result)
	}
	if !strings.Contains(result, "&lt;script&gt;") {
		t.Error("missing escaped message")
	}
}

func TestRenderFlashesOOB_RoundTripsThroughParser(t *testing.T) {
	in := []Flash{
		{Level: FlashError, Message: `Please enter your name. Please enter a "valid" email.`},
		{Level: FlashInfo, Message: "Redirecting to secure payment gateway..."},
	}

	got := parseFlashesFromHTML(RenderFlashesOOB(in))
	if len(got) != len(in) {
		t.Fatalf("parsed %d flashes, want %d", len(got), len(in))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("flash %d = %+v, want %+v", i, got[i], in[i])
		}
	}
}

func TestToastContainer(t *testing.T) {
	var buf bytes.Buffer
	if err := ToastContainer().Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), `id="toasts"`) {
		t.Errorf("container missing id: %s", buf.String())
	}
}
