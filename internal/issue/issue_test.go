// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

// stubRender replaces the glamour hook with a pass-through so tests can
// assert on the markdown itself.
func stubRender(t *testing.T) {
	t.Helper()
	orig := render
	render = func(in, _ string) (string, error) { return in, nil }
	t.Cleanup(func() { render = orig })
}

func TestIdsAreSequential(t *testing.T) {
	ids := []Id{
		ContainerNotFoundId,
		BadMagicId,
		CompressedContainerId,
		EncryptedContainerId,
		ContainerCorruptId,
		EntryNotFoundId,
		ConfigLoadFailedId,
		OutputNotWritableId,
	}

	for i, id := range ids {
		if id != Id(i+1) {
			t.Errorf("id at position %d = %d, want %d", i, id, i+1)
		}
	}
}

func TestGet(t *testing.T) {
	headings := map[Id]string{
		ContainerNotFoundId:   "Container file not found",
		BadMagicId:            "Not a packed config container",
		CompressedContainerId: "Compressed container",
		EncryptedContainerId:  "Encrypted container",
		ContainerCorruptId:    "Container data is corrupt",
		EntryNotFoundId:       "Entry not found",
		ConfigLoadFailedId:    "Failed to load configuration",
		OutputNotWritableId:   "Cannot write output",
	}

	for id, heading := range headings {
		card := Get(id)
		if card == nil {
			t.Errorf("Get(%d) returned nil", id)
			continue
		}
		if !strings.Contains(string(card.MarkdownMsg()), heading) {
			t.Errorf("Get(%d) card should contain %q", id, heading)
		}
	}

	if card := Get(Id(9999)); card != nil {
		t.Errorf("Get(9999) = %v, want nil", card)
	}
}

func TestValuesOrderedById(t *testing.T) {
	all := Values()

	if len(all) != 8 {
		t.Fatalf("Values() returned %d cards, want 8", len(all))
	}
	for i, card := range all {
		if card.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, card.Id(), i+1)
		}
		if card.MarkdownMsg() == "" {
			t.Errorf("card %d has an empty body", card.Id())
		}
	}
}

func TestIssue_Render(t *testing.T) {
	stubRender(t)

	t.Run("card body passes through", func(t *testing.T) {
		card := Get(CompressedContainerId)
		if card == nil {
			t.Fatal("Get(CompressedContainerId) returned nil")
		}
		rendered, err := card.Render("")
		if err != nil {
			t.Fatalf("Render() returned error: %v", err)
		}
		if !strings.Contains(rendered, "compression method 0") {
			t.Error("Render() output should mention compression method 0")
		}
	})

	t.Run("links fold into a See also section", func(t *testing.T) {
		card := &Issue{
			id:       Id(9999),
			mdMsg:    "# Linked card",
			docLinks: []HttpLink{"https://docs.example.com"},
			extLinks: []HttpLink{"https://forum.example.com"},
		}
		rendered, err := card.Render("")
		if err != nil {
			t.Fatalf("Render() returned error: %v", err)
		}
		for _, want := range []string{"See also", "docs.example.com", "forum.example.com"} {
			if !strings.Contains(rendered, want) {
				t.Errorf("Render() output should contain %q, got %q", want, rendered)
			}
		}
	})

	t.Run("no links means no See also section", func(t *testing.T) {
		card := &Issue{id: Id(9998), mdMsg: "# Bare card"}
		rendered, err := card.Render("")
		if err != nil {
			t.Fatalf("Render() returned error: %v", err)
		}
		if strings.Contains(rendered, "See also") {
			t.Errorf("Render() output should not contain a See also section: %q", rendered)
		}
	})
}

func TestLinkAccessorsClone(t *testing.T) {
	card := &Issue{
		id:       Id(9997),
		mdMsg:    "x",
		docLinks: []HttpLink{"https://docs.example.com"},
		extLinks: []HttpLink{"https://forum.example.com"},
	}

	card.DocLinks()[0] = "clobbered"
	card.ExtLinks()[0] = "clobbered"

	if card.DocLinks()[0] != "https://docs.example.com" {
		t.Error("DocLinks() should hand out a copy")
	}
	if card.ExtLinks()[0] != "https://forum.example.com" {
		t.Error("ExtLinks() should hand out a copy")
	}
}

func TestAllCardsRender(t *testing.T) {
	stubRender(t)

	for _, card := range Values() {
		rendered, err := card.Render("")
		if err != nil {
			t.Errorf("card %d failed to render: %v", card.Id(), err)
		}
		if rendered == "" {
			t.Errorf("card %d rendered to an empty string", card.Id())
		}
	}
}
