package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-keeper/models"
)

var passStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func makeTask(id, name string, updated time.Time) models.Task {
	return models.Task{ID: id, Name: name, CreatedAt: passStart.Add(-time.Hour), UpdatedAt: updated}
}

func localMap(tasks ...models.Task) map[string]models.Task {
	m := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		m[t.ID] = t
	}
	return m
}

func TestMerge_AcknowledgedCreationIsMapped(t *testing.T) {
	created := makeTask("tmp_1", "buy milk", passStart.Add(-time.Minute))
	echo := created
	echo.ID = "srv_9"

	out := Merge(MergeInput{
		Local:       localMap(created),
		Delta:       []models.Task{echo},
		Submissions: []Submission{{ID: "tmp_1", Outcome: SubmissionAcked, Authoritative: "srv_9"}},
		PassStart:   passStart,
	})

	require.Len(t, out.Mappings, 1)
	assert.Equal(t, models.IdentityMapping{Provisional: "tmp_1", Authoritative: "srv_9"}, out.Mappings[0])
	assert.Empty(t, out.Removals)
	assert.Empty(t, out.Conflicts)
	require.Len(t, out.Upserts, 1)
	assert.Equal(t, "srv_9", out.Upserts[0].ID)
}

func TestMerge_AcknowledgmentForVanishedRecordIsDiscarded(t *testing.T) {
	remote := makeTask("srv_9", "buy milk", passStart.Add(-time.Minute))

	out := Merge(MergeInput{
		Local:       localMap(),
		Delta:       []models.Task{remote},
		Conflicts:   []models.SyncConflict{{ID: "srv_9", RemoteRecord: remote}},
		Submissions: []Submission{{ID: "tmp_1", Outcome: SubmissionAcked, Authoritative: "srv_9"}},
		PassStart:   passStart,
	})

	assert.Empty(t, out.Mappings)
	assert.Empty(t, out.Upserts, "the server copy of a discarded creation must not come back as an orphan")
	assert.Empty(t, out.Conflicts)
}

func TestMerge_ConfirmedDeletesAndDroppedTombstonesAreRemoved(t *testing.T) {
	deleted := makeTask("7", "old", passStart.Add(-time.Minute))
	deleted.Deleted = true
	dropped := makeTask("tmp_2", "never sent", passStart.Add(-time.Minute))
	dropped.Deleted = true

	out := Merge(MergeInput{
		Local: localMap(deleted, dropped),
		Conflicts: []models.SyncConflict{
			{ID: "7", RemoteRecord: makeTask("7", "edited elsewhere", passStart.Add(-time.Second))},
		},
		Submissions: []Submission{
			{ID: "7", Outcome: SubmissionDeleted},
			{ID: "tmp_2", Outcome: SubmissionDropped},
		},
		PassStart: passStart,
	})

	assert.ElementsMatch(t, []string{"7", "tmp_2"}, out.Removals)
	assert.Empty(t, out.Conflicts, "a confirmed delete wins over a remote edit")
}

func TestMerge_ServerConflicts(t *testing.T) {
	local := makeTask("5", "local name", passStart.Add(-2*time.Minute))
	remote := makeTask("5", "remote name", passStart.Add(-time.Minute))
	echo := makeTask("6", "echoed", passStart.Add(-time.Minute))

	tests := []struct {
		name      string
		local     map[string]models.Task
		conflict  models.SyncConflict
		wantLocal string
	}{
		{
			name:      "local side comes from the replica",
			local:     localMap(local),
			conflict:  models.SyncConflict{ID: "5", LocalSnapshotEcho: makeTask("5", "stale echo", passStart), RemoteRecord: remote},
			wantLocal: "local name",
		},
		{
			name:      "falls back to the echoed snapshot",
			local:     localMap(),
			conflict:  models.SyncConflict{ID: "6", LocalSnapshotEcho: echo, RemoteRecord: makeTask("6", "remote", passStart)},
			wantLocal: "echoed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Merge(MergeInput{
				Local:     tt.local,
				Delta:     []models.Task{tt.conflict.RemoteRecord},
				Conflicts: []models.SyncConflict{tt.conflict},
				PassStart: passStart,
			})

			require.Len(t, out.Conflicts, 1)
			c := out.Conflicts[0]
			assert.Equal(t, tt.conflict.ID, c.ID)
			assert.Equal(t, tt.wantLocal, c.Local.Name)
			assert.Equal(t, tt.conflict.RemoteRecord.Name, c.Remote.Name)
			assert.Equal(t, passStart, c.DetectedAt)
			assert.Empty(t, out.Upserts, "a conflicting record must not overwrite the local copy")
		})
	}
}

func TestMerge_Delta(t *testing.T) {
	tests := []struct {
		name        string
		local       []models.Task
		delta       models.Task
		wantUpsert  bool
		wantRemoval bool
	}{
		{
			name:       "new remote record",
			delta:      makeTask("3", "from another device", passStart.Add(-time.Minute)),
			wantUpsert: true,
		},
		{
			name:       "remote update of a clean record",
			local:      []models.Task{makeTask("3", "old", passStart.Add(-time.Hour))},
			delta:      makeTask("3", "new", passStart.Add(-time.Minute)),
			wantUpsert: true,
		},
		{
			name:  "record edited during the pass stays pending",
			local: []models.Task{makeTask("3", "typed just now", passStart.Add(time.Second))},
			delta: makeTask("3", "remote", passStart.Add(-time.Minute)),
		},
		{
			name:  "record stamped in the pass start tick stays pending",
			local: []models.Task{makeTask("3", "same tick", passStart)},
			delta: makeTask("3", "remote", passStart.Add(-time.Minute)),
		},
		{
			name:  "remote tombstone",
			local: []models.Task{makeTask("3", "doomed", passStart.Add(time.Second))},
			delta: func() models.Task {
				t := makeTask("3", "doomed", passStart)
				t.Deleted = true
				return t
			}(),
			wantRemoval: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Merge(MergeInput{
				Local:     localMap(tt.local...),
				Delta:     []models.Task{tt.delta},
				PassStart: passStart,
			})

			if tt.wantUpsert {
				require.Len(t, out.Upserts, 1)
				assert.Equal(t, tt.delta.Name, out.Upserts[0].Name)
			} else {
				assert.Empty(t, out.Upserts)
			}
			if tt.wantRemoval {
				assert.Equal(t, []string{tt.delta.ID}, out.Removals)
			} else {
				assert.Empty(t, out.Removals)
			}
		})
	}
}

func TestMerge_DeltaRefreshesUnresolvedConflict(t *testing.T) {
	local := makeTask("5", "mine", passStart.Add(-time.Hour))
	previous := models.Conflict{
		ID:         "5",
		Local:      local,
		Remote:     makeTask("5", "theirs", passStart.Add(-time.Hour)),
		DetectedAt: passStart.Add(-time.Hour),
	}
	newer := makeTask("5", "theirs again", passStart.Add(-time.Minute))

	out := Merge(MergeInput{
		Local:      localMap(local),
		Delta:      []models.Task{newer},
		Unresolved: map[string]models.Conflict{"5": previous},
		PassStart:  passStart,
	})

	assert.Empty(t, out.Upserts)
	require.Len(t, out.Conflicts, 1)
	assert.Equal(t, "mine", out.Conflicts[0].Local.Name)
	assert.Equal(t, "theirs again", out.Conflicts[0].Remote.Name)
	assert.Equal(t, passStart, out.Conflicts[0].DetectedAt)
}

func TestSubmissionOutcome_String(t *testing.T) {
	assert.Equal(t, "failed", SubmissionFailed.String())
	assert.Equal(t, "acked", SubmissionAcked.String())
	assert.Equal(t, "conflicted", SubmissionConflicted.String())
	assert.Equal(t, "dropped", SubmissionDropped.String())
}
