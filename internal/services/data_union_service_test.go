package services

import (
	"errors"
	"testing"

	"github.com/astrahealth/astra/internal/models"
)

type syncRef struct {
	userHash string
	dataType string
	dataID   string
}

type stubDataUnionStore struct {
	records map[syncRef]models.DataUnionRecord
	nextID  uint
}

func newStubDataUnionStore() *stubDataUnionStore {
	return &stubDataUnionStore{records: map[syncRef]models.DataUnionRecord{}, nextID: 1}
}

func (store *stubDataUnionStore) FindByReference(userHash string, dataType string, dataID string) (models.DataUnionRecord, bool, error) {
	record, found := store.records[syncRef{userHash, dataType, dataID}]
	return record, found, nil
}

func (store *stubDataUnionStore) Create(record *models.DataUnionRecord) error {
	record.ID = store.nextID
	store.nextID++
	store.records[syncRef{record.UserHash, record.DataType, record.DataID}] = *record
	return nil
}

func (store *stubDataUnionStore) Save(record *models.DataUnionRecord) error {
	store.records[syncRef{record.UserHash, record.DataType, record.DataID}] = *record
	return nil
}

func (store *stubDataUnionStore) ListFailedSyncs(partner string, dataType string) ([]models.DataUnionRecord, error) {
	failed := make([]models.DataUnionRecord, 0)
	for _, record := range store.records {
		if dataType != "" && record.DataType != dataType {
			continue
		}
		synced := record.Akave.IsSynced
		if partner == models.PartnerVana {
			synced = record.Vana.IsSynced
		}
		if !synced {
			failed = append(failed, record)
		}
	}
	return failed, nil
}

func (store *stubDataUnionStore) Count() (int64, error) {
	return int64(len(store.records)), nil
}

func (store *stubDataUnionStore) CountPartnerSynced(partner string, synced bool) (int64, error) {
	var matched int64
	for _, record := range store.records {
		flag := record.Akave.IsSynced
		if partner == models.PartnerVana {
			flag = record.Vana.IsSynced
		}
		if flag == synced {
			matched++
		}
	}
	return matched, nil
}

func TestTrackSyncIsIdempotent(t *testing.T) {
	service := NewDataUnionService(newStubDataUnionStore())

	first, err := service.TrackSync("hash-1", models.DataTypeCheckin, "checkin_1")
	if err != nil {
		t.Fatalf("TrackSync() unexpected error: %v", err)
	}
	second, err := service.TrackSync("hash-1", models.DataTypeCheckin, "checkin_1")
	if err != nil {
		t.Fatalf("repeat TrackSync() unexpected error: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same ledger entry, got ids %d and %d", first.ID, second.ID)
	}

	if _, err := service.TrackSync("hash-1", "journal", "x"); !errors.Is(err, ErrUnknownDataType) {
		t.Fatalf("expected ErrUnknownDataType, got %v", err)
	}
	if _, err := service.TrackSync("", models.DataTypeHealth, "x"); !errors.Is(err, ErrSyncRefInvalid) {
		t.Fatalf("expected ErrSyncRefInvalid, got %v", err)
	}
}

func TestUpdatePartnerSyncOutcomes(t *testing.T) {
	service := NewDataUnionService(newStubDataUnionStore())

	record, err := service.UpdatePartnerSync("hash-1", models.DataTypeHealth, "hd_1", models.PartnerAkave, PartnerSyncUpdate{
		Success:      false,
		ErrorMessage: "upload timed out",
		RetryData:    map[string]any{"attempt": 1},
	})
	if err != nil {
		t.Fatalf("UpdatePartnerSync() unexpected error: %v", err)
	}
	if record.Akave.IsSynced || record.Akave.ErrorMessage != "upload timed out" || record.Akave.RetryData == nil {
		t.Fatalf("expected failure state captured, got %+v", record.Akave)
	}

	record, err = service.UpdatePartnerSync("hash-1", models.DataTypeHealth, "hd_1", models.PartnerAkave, PartnerSyncUpdate{
		Success: true,
		Key:     "bucket/hd_1",
		URL:     "https://akave.example/hd_1",
	})
	if err != nil {
		t.Fatalf("UpdatePartnerSync() unexpected error: %v", err)
	}
	if !record.Akave.IsSynced || record.Akave.ErrorMessage != "" || record.Akave.RetryData != nil {
		t.Fatalf("expected failure state cleared, got %+v", record.Akave)
	}
	if record.Akave.Key != "bucket/hd_1" || record.Akave.URL != "https://akave.example/hd_1" {
		t.Fatalf("expected akave location stored, got %+v", record.Akave)
	}
	if record.Vana.IsSynced {
		t.Fatal("akave update must not touch vana state")
	}

	record, err = service.UpdatePartnerSync("hash-1", models.DataTypeHealth, "hd_1", models.PartnerVana, PartnerSyncUpdate{
		Success: true,
		FileID:  "file-9",
	})
	if err != nil {
		t.Fatalf("UpdatePartnerSync() unexpected error: %v", err)
	}
	if !record.Vana.IsSynced || record.Vana.FileID != "file-9" {
		t.Fatalf("expected vana file id stored, got %+v", record.Vana)
	}

	if _, err := service.UpdatePartnerSync("hash-1", models.DataTypeHealth, "hd_1", "ipfs", PartnerSyncUpdate{}); !errors.Is(err, ErrUnknownPartner) {
		t.Fatalf("expected ErrUnknownPartner, got %v", err)
	}
}

func TestFindFailedSyncsAndStats(t *testing.T) {
	service := NewDataUnionService(newStubDataUnionStore())

	if _, err := service.UpdatePartnerSync("hash-1", models.DataTypeCheckin, "c1", models.PartnerAkave, PartnerSyncUpdate{Success: true, Key: "k"}); err != nil {
		t.Fatalf("seed sync failed: %v", err)
	}
	if _, err := service.UpdatePartnerSync("hash-1", models.DataTypeCheckin, "c2", models.PartnerAkave, PartnerSyncUpdate{Success: false, ErrorMessage: "boom"}); err != nil {
		t.Fatalf("seed sync failed: %v", err)
	}

	failed, err := service.FindFailedSyncs(models.PartnerAkave, models.DataTypeCheckin)
	if err != nil {
		t.Fatalf("FindFailedSyncs() unexpected error: %v", err)
	}
	if len(failed) != 1 || failed[0].DataID != "c2" {
		t.Fatalf("expected one failed record c2, got %v", failed)
	}

	if _, err := service.FindFailedSyncs("ipfs", ""); !errors.Is(err, ErrUnknownPartner) {
		t.Fatalf("expected ErrUnknownPartner, got %v", err)
	}

	stats, err := service.Stats()
	if err != nil {
		t.Fatalf("Stats() unexpected error: %v", err)
	}
	if stats.Total != 2 {
		t.Fatalf("expected 2 records, got %d", stats.Total)
	}
	if stats.Akave.Synced != 1 || stats.Akave.Failed != 1 || stats.Akave.SuccessRate != 50 {
		t.Fatalf("unexpected akave stats %+v", stats.Akave)
	}
	if stats.Vana.Synced != 0 || stats.Vana.Failed != 2 || stats.Vana.SuccessRate != 0 {
		t.Fatalf("unexpected vana stats %+v", stats.Vana)
	}
}

func TestStatsEmptyLedger(t *testing.T) {
	service := NewDataUnionService(newStubDataUnionStore())

	stats, err := service.Stats()
	if err != nil {
		t.Fatalf("Stats() unexpected error: %v", err)
	}
	if stats.Total != 0 || stats.Akave.SuccessRate != 0 || stats.Vana.SuccessRate != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
}
