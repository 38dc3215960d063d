package load_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kentontilford/hfsrb-final/internal/config"
	"github.com/kentontilford/hfsrb-final/internal/db"
	"github.com/kentontilford/hfsrb-final/internal/load"
	"github.com/kentontilford/hfsrb-final/internal/logging"
	"github.com/kentontilford/hfsrb-final/internal/model"
	"github.com/kentontilford/hfsrb-final/internal/store"
)

const (
	testPort     = 15432
	testDB       = "surveytest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var (
	testDSN string
	pg      *embeddedpostgres.EmbeddedPostgres
)

func TestMain(m *testing.M) {
	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	pg = embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30*time.Second),
	)

	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}

	os.Exit(code)
}

// setupDB connects, drops all application tables for a clean state, and
// re-applies migrations.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, testDSN)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	for _, table := range []string{
		"load_runs", "bed_inventory", "region_summary",
		"ltc_survey", "astc_survey", "esrd_survey", "hospital_survey", "facility",
	} {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			t.Fatalf("drop table %s: %v", table, err)
		}
	}

	log := logging.Setup("text")
	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		pool.Close()
		t.Fatalf("migrations: %v", err)
	}

	t.Cleanup(func() { pool.Close() })
	return pool
}

func writeDoc(t *testing.T, dataDir string, year int, facilityType, name, content string) {
	t.Helper()
	dir := filepath.Join(dataDir, fmt.Sprint(year), facilityType, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "schema_payload.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func hospitalConfig(dataDir string) *config.Config {
	return &config.Config{
		DSN:          testDSN,
		DataDir:      dataDir,
		Year:         2023,
		FacilityType: "Hospital",
		LogFormat:    "text",
		Rules:        config.DefaultRules(),
	}
}

const docAlpha = `{
	"meta": {"facility_id": "H-A", "facility_name": "Alpha General"},
	"payload": {
		"hsa": "1", "hpa": "A-01", "county": "Cook",
		"hospital_type": "General Hospital",
		"ms_con": "100", "ms_admissions": "1,000", "ms_patient_days": "4000",
		"White Inpatient Admissions": 600,
		"Black Inpatient Admissions": 400,
		"Payer Medicare Admissions": 500,
		"Payer Medicaid Admissions": 500
	}
}`

const docBeta = `{
	"meta": {"facility_id": "H-B", "facility_name": "Beta Children's"},
	"payload": {
		"hsa": "1", "hpa": "A-02",
		"hospital_type": "Children's General Hospital",
		"ms_con": "50", "ms_admissions": "500",
		"White Inpatient Admissions": 100,
		"Black Inpatient Admissions": 300
	}
}`

const docGamma = `{
	"meta": {"facility_id": "H-C", "facility_name": "Gamma Rural"},
	"payload": {
		"hsa": "2",
		"hospital_type": "Critical Access Hospital",
		"ms_con": "25"
	}
}`

func TestLoadPipeline(t *testing.T) {
	pool := setupDB(t)
	st := store.New(pool)
	ctx := context.Background()
	log := logging.Setup("text")

	dataDir := t.TempDir()
	writeDoc(t, dataDir, 2023, "Hospital", "alpha", docAlpha)
	writeDoc(t, dataDir, 2023, "Hospital", "beta", docBeta)
	writeDoc(t, dataDir, 2023, "Hospital", "gamma", docGamma)
	writeDoc(t, dataDir, 2023, "Hospital", "broken", `{"meta": {`)
	writeDoc(t, dataDir, 2023, "Hospital", "anon", `{"payload": {"facility_name": "No ID"}}`)

	cfg := hospitalConfig(dataDir)
	sum, err := load.Run(ctx, st, log, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.FilesFound != 5 || sum.OK != 3 || sum.Bad != 2 {
		t.Fatalf("summary = found %d ok %d bad %d, want 5/3/2", sum.FilesFound, sum.OK, sum.Bad)
	}
	if sum.HSASummaries != 2 || sum.HPASummaries != 2 {
		t.Fatalf("summaries = hsa %d hpa %d, want 2/2", sum.HSASummaries, sum.HPASummaries)
	}

	fac, err := st.GetFacility(ctx, "H-A")
	if err != nil || fac == nil {
		t.Fatalf("GetFacility H-A: %v %v", fac, err)
	}
	if fac.Name != "Alpha General" || fac.County == nil || *fac.County != "Cook" {
		t.Errorf("facility = %+v", fac)
	}

	rec, err := st.LatestHospitalSurvey(ctx, "H-A")
	if err != nil || rec == nil {
		t.Fatalf("LatestHospitalSurvey: %v %v", rec, err)
	}
	if rec.MSCon == nil || *rec.MSCon != 100 {
		t.Errorf("MSCon = %v, want 100", rec.MSCon)
	}
	if rec.MSAdmissions == nil || *rec.MSAdmissions != 1000 {
		t.Errorf("MSAdmissions = %v, want 1000 from comma-grouped cell", rec.MSAdmissions)
	}
	if rec.PayerMedicare == nil || *rec.PayerMedicare != 0.5 {
		t.Errorf("PayerMedicare = %v, want 0.5", rec.PayerMedicare)
	}

	// Beta reported no payer columns: shares stay null, not zero.
	recB, err := st.LatestHospitalSurvey(ctx, "H-B")
	if err != nil || recB == nil {
		t.Fatalf("LatestHospitalSurvey H-B: %v %v", recB, err)
	}
	if recB.PayerMedicare != nil {
		t.Errorf("H-B PayerMedicare = %v, want nil", *recB.PayerMedicare)
	}

	hsa1, err := st.GetRegionSummary(ctx, model.RegionHSA, "1", 2023)
	if err != nil || hsa1 == nil {
		t.Fatalf("GetRegionSummary HSA 1: %v %v", hsa1, err)
	}
	if hsa1.TotalFacilities != 2 || hsa1.General != 2 || hsa1.Childrens != 1 {
		t.Errorf("HSA 1 counts = %+v", hsa1)
	}
	if hsa1.MSCon != 150 {
		t.Errorf("HSA 1 MSCon = %v, want 150", hsa1.MSCon)
	}
	// Group share over raw counts: (600+100)/1400.
	if hsa1.RaceWhite == nil || *hsa1.RaceWhite != 0.5 {
		t.Errorf("HSA 1 RaceWhite = %v, want 0.5", hsa1.RaceWhite)
	}
	if hsa1.PayerMedicare == nil || *hsa1.PayerMedicare != 0.5 {
		t.Errorf("HSA 1 PayerMedicare = %v, want 0.5", hsa1.PayerMedicare)
	}
	if hsa1.EthnicityHispanic != nil {
		t.Errorf("HSA 1 EthnicityHispanic = %v, want nil (nothing reported)", *hsa1.EthnicityHispanic)
	}

	hsa2, err := st.GetRegionSummary(ctx, model.RegionHSA, "2", 2023)
	if err != nil || hsa2 == nil {
		t.Fatalf("GetRegionSummary HSA 2: %v %v", hsa2, err)
	}
	if hsa2.TotalFacilities != 1 || hsa2.CriticalAccess != 1 {
		t.Errorf("HSA 2 = %+v", hsa2)
	}
	if hsa2.RaceWhite != nil {
		t.Errorf("HSA 2 RaceWhite = %v, want nil", *hsa2.RaceWhite)
	}

	var runs int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM load_runs").Scan(&runs); err != nil {
		t.Fatal(err)
	}
	if runs != 1 {
		t.Errorf("load_runs count = %d, want 1", runs)
	}
}

func TestLoadPipelineRerunOverwrites(t *testing.T) {
	pool := setupDB(t)
	st := store.New(pool)
	ctx := context.Background()
	log := logging.Setup("text")

	dataDir := t.TempDir()
	writeDoc(t, dataDir, 2023, "Hospital", "alpha", docAlpha)
	writeDoc(t, dataDir, 2023, "Hospital", "beta", docBeta)

	cfg := hospitalConfig(dataDir)
	if _, err := load.Run(ctx, st, log, cfg); err != nil {
		t.Fatalf("first run: %v", err)
	}

	// Corrected re-submission: same facility and year, new value.
	writeDoc(t, dataDir, 2023, "Hospital", "alpha",
		`{"meta": {"facility_id": "H-A", "facility_name": "Alpha General"},
		  "payload": {"hsa": "1", "hpa": "A-01", "hospital_type": "General Hospital", "ms_con": "120"}}`)
	if _, err := load.Run(ctx, st, log, cfg); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var surveys int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM hospital_survey WHERE facility_id = 'H-A'").Scan(&surveys); err != nil {
		t.Fatal(err)
	}
	if surveys != 1 {
		t.Fatalf("hospital_survey rows for H-A = %d, want 1 after rerun", surveys)
	}

	rec, err := st.LatestHospitalSurvey(ctx, "H-A")
	if err != nil || rec == nil {
		t.Fatalf("LatestHospitalSurvey: %v %v", rec, err)
	}
	if rec.MSCon == nil || *rec.MSCon != 120 {
		t.Errorf("MSCon = %v, want 120 after rerun", rec.MSCon)
	}
	// The overwrite is whole-row: fields absent from the resubmission go
	// back to null rather than keeping stale values.
	if rec.MSAdmissions != nil {
		t.Errorf("MSAdmissions = %v, want nil after full overwrite", *rec.MSAdmissions)
	}

	hsa1, err := st.GetRegionSummary(ctx, model.RegionHSA, "1", 2023)
	if err != nil || hsa1 == nil {
		t.Fatalf("GetRegionSummary: %v %v", hsa1, err)
	}
	if hsa1.MSCon != 170 {
		t.Errorf("HSA 1 MSCon = %v, want 170 after rerun", hsa1.MSCon)
	}
}

func TestLoadESRD(t *testing.T) {
	pool := setupDB(t)
	st := store.New(pool)
	ctx := context.Background()
	log := logging.Setup("text")

	dataDir := t.TempDir()
	writeDoc(t, dataDir, 2023, "ESRD", "west", `{
		"meta": {"facility_id": "E-1", "facility_name": "Westside Dialysis"},
		"payload": {
			"hsa": "1",
			"stations_oct_setup_staffed": "24",
			"shifts_mon": 2, "shifts_wed": 2, "shifts_fri": 2,
			"patients_unduplicated": "180"
		}
	}`)

	cfg := hospitalConfig(dataDir)
	cfg.FacilityType = "ESRD"
	sum, err := load.Run(ctx, st, log, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.OK != 1 || sum.Bad != 0 {
		t.Fatalf("summary = ok %d bad %d", sum.OK, sum.Bad)
	}
	// No region summaries for non-hospital batches.
	if sum.HSASummaries != 0 || sum.HPASummaries != 0 {
		t.Errorf("summaries = %d/%d, want none", sum.HSASummaries, sum.HPASummaries)
	}

	var stations, shifts *int64
	err = pool.QueryRow(ctx, "SELECT stations, shifts FROM esrd_survey WHERE facility_id = 'E-1' AND year = 2023").
		Scan(&stations, &shifts)
	if err != nil {
		t.Fatal(err)
	}
	if stations == nil || *stations != 24 || shifts == nil || *shifts != 6 {
		t.Errorf("stations = %v shifts = %v, want 24 and 6", stations, shifts)
	}
}

func TestUpsertFacilityOverwrite(t *testing.T) {
	pool := setupDB(t)
	st := store.New(pool)
	ctx := context.Background()

	county := "Cook"
	f := &model.Facility{ID: "H-X", Type: model.Hospital, Name: "First Name", County: &county, Active: true}
	if err := st.UpsertFacility(ctx, f); err != nil {
		t.Fatal(err)
	}
	// Re-registration without a county clears it.
	if err := st.UpsertFacility(ctx, &model.Facility{ID: "H-X", Type: model.Hospital, Name: "Second Name", Active: true}); err != nil {
		t.Fatal(err)
	}

	got, err := st.GetFacility(ctx, "H-X")
	if err != nil || got == nil {
		t.Fatalf("GetFacility: %v %v", got, err)
	}
	if got.Name != "Second Name" {
		t.Errorf("name = %q, want Second Name", got.Name)
	}
	if got.County != nil {
		t.Errorf("county = %q, want nil after overwrite", *got.County)
	}
}

func TestBedInventory(t *testing.T) {
	pool := setupDB(t)
	st := store.New(pool)
	ctx := context.Background()

	if err := st.UpsertFacility(ctx, &model.Facility{ID: "H-B1", Type: model.Hospital, Name: "Bedded", Active: true}); err != nil {
		t.Fatal(err)
	}

	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatal(err)
		}
		return d
	}
	add := func(bedType string, n int64, eff string) {
		t.Helper()
		if err := st.AddBedEntry(ctx, &model.BedEntry{
			FacilityID: "H-B1", BedType: bedType, AuthorizedBeds: n, EffectiveDate: day(eff),
		}); err != nil {
			t.Fatal(err)
		}
	}

	add("MS", 100, "2024-01-01")
	add("MS", 120, "2024-06-01")
	add("ICU", 10, "2024-01-01")
	// Same effective date, entered later: submission time breaks the tie.
	add("MS", 130, "2024-06-01")

	latest, err := st.LatestBeds(ctx, "H-B1")
	if err != nil {
		t.Fatal(err)
	}
	byType := make(map[string]int64, len(latest))
	for _, e := range latest {
		byType[e.BedType] = e.AuthorizedBeds
	}
	if byType["MS"] != 130 || byType["ICU"] != 10 {
		t.Errorf("latest = %v, want MS 130 ICU 10", byType)
	}

	history, err := st.BedHistory(ctx, "H-B1", "MS")
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 3 {
		t.Errorf("MS history = %d entries, want 3 (append-only)", len(history))
	}

	err = st.AddBedEntry(ctx, &model.BedEntry{
		FacilityID: "H-B1", BedType: "MS", AuthorizedBeds: 1,
		EffectiveDate: time.Now().UTC().AddDate(0, 0, 2),
	})
	if !errors.Is(err, store.ErrFutureEffectiveDate) {
		t.Errorf("future entry err = %v, want ErrFutureEffectiveDate", err)
	}
}

func TestFacilityGeoRoundTrip(t *testing.T) {
	pool := setupDB(t)
	st := store.New(pool)
	ctx := context.Background()

	if err := st.UpsertFacility(ctx, &model.Facility{
		ID: "H-G1", Type: model.Hospital, Name: "Geo Target",
		Address: &model.Address{Street: "100 Main St", City: "Chicago", Zip: "60601", State: "IL"},
		Active:  true,
	}); err != nil {
		t.Fatal(err)
	}

	missing, err := st.FacilitiesMissingGeo(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(missing) != 1 || missing[0].ID != "H-G1" {
		t.Fatalf("missing = %+v, want H-G1", missing)
	}
	if missing[0].Address == nil || missing[0].Address.City != "Chicago" {
		t.Errorf("address = %+v", missing[0].Address)
	}

	if err := st.SetFacilityGeo(ctx, "H-G1", 41.8781, -87.6298); err != nil {
		t.Fatal(err)
	}

	missing, err = st.FacilitiesMissingGeo(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(missing) != 0 {
		t.Errorf("missing after geocode = %+v, want none", missing)
	}

	got, err := st.GetFacility(ctx, "H-G1")
	if err != nil || got == nil {
		t.Fatalf("GetFacility: %v %v", got, err)
	}
	if got.Lat == nil || *got.Lat != 41.8781 {
		t.Errorf("lat = %v", got.Lat)
	}
	// A later survey load must not wipe the stored coordinates.
	if err := st.UpsertFacility(ctx, &model.Facility{ID: "H-G1", Type: model.Hospital, Name: "Geo Target", Active: true}); err != nil {
		t.Fatal(err)
	}
	got, err = st.GetFacility(ctx, "H-G1")
	if err != nil || got == nil {
		t.Fatalf("GetFacility: %v %v", got, err)
	}
	if got.Lat == nil {
		t.Error("coordinates lost after facility re-upsert")
	}
}
