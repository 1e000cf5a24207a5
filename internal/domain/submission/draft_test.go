package submission

import (
	"testing"
	"time"

	"github.com/linskybing/dynamic-forms/internal/domain/form"
	"github.com/stretchr/testify/assert"
)

func edit(at time.Time, p form.Payload) DraftEdit {
	return DraftEdit{OwnerID: "u-1", FormID: "f", SchemaVersion: 1, Payload: p, ClientTimestamp: at, Source: SourceLocal, ReceivedAt: at}
}

// commit stands in for the store: it bumps the revision the way WriteAtomic does.
func commit(d *DraftRecord) *DraftRecord {
	d.Revision++
	return d
}

func TestMergeDraft_FieldLevelConvergence(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	t2, t3 := t1.Add(time.Minute), t1.Add(2*time.Minute)

	base := commit(MergeDraft(nil, edit(t1, form.Payload{"a": form.Number(1)})))
	editA := edit(t2, form.Payload{"a": form.Number(2)})
	editB := edit(t3, form.Payload{"b": form.Number(3)})

	ab := commit(MergeDraft(commit(MergeDraft(base, editA)), editB))
	ba := commit(MergeDraft(commit(MergeDraft(base, editB)), editA))

	want := form.Payload{"a": form.Number(2), "b": form.Number(3)}
	assert.Equal(t, want, ab.Payload)
	assert.Equal(t, want, ba.Payload)
}

func TestMergeDraft_OlderEditDoesNotOverwrite(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	d := commit(MergeDraft(nil, edit(t1.Add(time.Hour), form.Payload{"a": form.Text("new")})))
	d = MergeDraft(d, edit(t1, form.Payload{"a": form.Text("stale"), "b": form.Text("fresh")}))

	assert.Equal(t, form.Text("new"), d.Payload["a"])
	assert.Equal(t, form.Text("fresh"), d.Payload["b"])
}

func TestMergeDraft_TieGoesToLaterArrival(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	d := commit(MergeDraft(nil, edit(at, form.Payload{"a": form.Text("first")})))
	d = commit(MergeDraft(d, edit(at, form.Payload{"a": form.Text("second")})))

	assert.Equal(t, form.Text("second"), d.Payload["a"])
	assert.Equal(t, int64(2), d.Stamps["a"].Seq)
}

func TestMergeDraft_UntouchedFieldsSurvive(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	d := commit(MergeDraft(nil, edit(t1, form.Payload{"hidden": form.Text("keep me"), "a": form.Text("x")})))
	d = MergeDraft(d, edit(t1.Add(time.Minute), form.Payload{"a": form.Text("y")}))

	assert.Equal(t, form.Text("keep me"), d.Payload["hidden"])
	assert.Equal(t, t1.Add(time.Minute), d.LastSavedAt)
}

func TestMergeDraft_DoesNotMutateCurrent(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	d := commit(MergeDraft(nil, edit(t1, form.Payload{"a": form.Text("x")})))

	_ = MergeDraft(d, edit(t1.Add(time.Minute), form.Payload{"a": form.Text("y")}))

	assert.Equal(t, form.Text("x"), d.Payload["a"])
}
