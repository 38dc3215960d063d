package sql

import (
	"embed"
	_ "embed"
)

// Migrations holds the schema migration files, applied in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/upsert_facility.sql
var UpsertFacility string

//go:embed queries/upsert_hospital_survey.sql
var UpsertHospitalSurvey string

//go:embed queries/upsert_esrd_survey.sql
var UpsertESRDSurvey string

//go:embed queries/upsert_astc_survey.sql
var UpsertASTCSurvey string

//go:embed queries/upsert_ltc_survey.sql
var UpsertLTCSurvey string

//go:embed queries/upsert_region_summary.sql
var UpsertRegionSummary string

//go:embed queries/get_facility.sql
var GetFacility string

//go:embed queries/get_hospital_survey_latest.sql
var GetHospitalSurveyLatest string

//go:embed queries/get_region_summary.sql
var GetRegionSummary string

//go:embed queries/list_region_summaries.sql
var ListRegionSummaries string

//go:embed queries/insert_bed_entry.sql
var InsertBedEntry string

//go:embed queries/latest_beds.sql
var LatestBeds string

//go:embed queries/record_load_run.sql
var RecordLoadRun string

//go:embed queries/facilities_missing_geo.sql
var FacilitiesMissingGeo string

//go:embed queries/update_facility_geo.sql
var UpdateFacilityGeo string
