package ledger

import "time"

// MeterType is the phase configuration of the replacement meter.
type MeterType string

const (
	MeterSinglePhase MeterType = "single-phase"
	MeterThreePhase  MeterType = "three-phase"
)

func (m MeterType) Valid() bool {
	return m == MeterSinglePhase || m == MeterThreePhase
}

// BoxType is the cabinet configuration the replacement meter is mounted in.
// The set is closed; entries with any other value are rejected.
type BoxType string

const (
	BoxSingle      BoxType = "single-position"
	BoxDouble      BoxType = "double-position"
	BoxFour        BoxType = "four-position"
	BoxMulti       BoxType = "multi-position"
	BoxPoleMounted BoxType = "pole-mounted"
)

func (b BoxType) Valid() bool {
	switch b {
	case BoxSingle, BoxDouble, BoxFour, BoxMulti, BoxPoleMounted:
		return true
	}
	return false
}

// SourceRecord is one row of the input asset ledger. AssetID is trimmed and
// never blank; rows without it are dropped at load time. Columns beyond the
// required four are carried in Extra keyed by their header title.
type SourceRecord struct {
	CustomerID   string
	CustomerName string
	AssetID      string
	MeterCode    string
	Extra        map[string]string
	// Row is the 1-based sheet row the record came from, for
	// operator-facing disambiguation messages.
	Row int
}

// Field names one column of the daily output ledger.
type Field string

const (
	FieldCustomerID        Field = "customer_id"
	FieldCustomerName      Field = "customer_name"
	FieldOriginalAssetID   Field = "original_asset_id"
	FieldOriginalMeterCode Field = "original_meter_code"
	FieldNewAssetID        Field = "new_asset_id"
	FieldMeterType         Field = "meter_type"
	FieldSealNumber        Field = "seal_number"
	FieldBoxType           Field = "box_type"
	FieldMaterialUsage     Field = "material_usage"
	FieldInstallers        Field = "installers"
	FieldRemark            Field = "remark"
	FieldRecordedAt        Field = "entry_timestamp"
)

// entryColumns fixes the on-disk column order. It never changes regardless
// of the order fields were filled in.
var entryColumns = []Field{
	FieldCustomerID,
	FieldCustomerName,
	FieldOriginalAssetID,
	FieldOriginalMeterCode,
	FieldNewAssetID,
	FieldMeterType,
	FieldSealNumber,
	FieldBoxType,
	FieldMaterialUsage,
	FieldInstallers,
	FieldRemark,
	FieldRecordedAt,
}

var columnTitles = map[Field]string{
	FieldCustomerID:        "Customer ID",
	FieldCustomerName:      "Customer Name",
	FieldOriginalAssetID:   "Original Asset ID",
	FieldOriginalMeterCode: "Original Meter Code",
	FieldNewAssetID:        "New Asset ID",
	FieldMeterType:         "Meter Type",
	FieldSealNumber:        "Seal Number",
	FieldBoxType:           "Box Type",
	FieldMaterialUsage:     "Material Usage",
	FieldInstallers:        "Installers",
	FieldRemark:            "Remark",
	FieldRecordedAt:        "Recorded At",
}

// mutableFields is the subset EditAt may overwrite. Identity fields and the
// timestamp stay out.
var mutableFields = map[Field]bool{
	FieldOriginalMeterCode: true,
	FieldNewAssetID:        true,
	FieldMeterType:         true,
	FieldSealNumber:        true,
	FieldBoxType:           true,
	FieldMaterialUsage:     true,
	FieldRemark:            true,
}

// EntryRecord is one completed replacement in the daily output ledger.
// String fields default to "", never null.
type EntryRecord struct {
	CustomerID        string
	CustomerName      string
	OriginalAssetID   string
	OriginalMeterCode string
	NewAssetID        string
	MeterType         MeterType
	SealNumber        string
	BoxType           BoxType
	MaterialUsage     string
	Installers        string
	Remark            string
	RecordedAt        time.Time
}

const recordedAtLayout = "2006-01-02 15:04:05"

func (e EntryRecord) fieldValue(f Field) string {
	switch f {
	case FieldCustomerID:
		return e.CustomerID
	case FieldCustomerName:
		return e.CustomerName
	case FieldOriginalAssetID:
		return e.OriginalAssetID
	case FieldOriginalMeterCode:
		return e.OriginalMeterCode
	case FieldNewAssetID:
		return e.NewAssetID
	case FieldMeterType:
		return string(e.MeterType)
	case FieldSealNumber:
		return e.SealNumber
	case FieldBoxType:
		return string(e.BoxType)
	case FieldMaterialUsage:
		return e.MaterialUsage
	case FieldInstallers:
		return e.Installers
	case FieldRemark:
		return e.Remark
	case FieldRecordedAt:
		if e.RecordedAt.IsZero() {
			return ""
		}
		return e.RecordedAt.Format(recordedAtLayout)
	}
	return ""
}

func (e *EntryRecord) setField(f Field, v string) {
	switch f {
	case FieldCustomerID:
		e.CustomerID = v
	case FieldCustomerName:
		e.CustomerName = v
	case FieldOriginalAssetID:
		e.OriginalAssetID = v
	case FieldOriginalMeterCode:
		e.OriginalMeterCode = v
	case FieldNewAssetID:
		e.NewAssetID = v
	case FieldMeterType:
		e.MeterType = MeterType(v)
	case FieldSealNumber:
		e.SealNumber = v
	case FieldBoxType:
		e.BoxType = BoxType(v)
	case FieldMaterialUsage:
		e.MaterialUsage = v
	case FieldInstallers:
		e.Installers = v
	case FieldRemark:
		e.Remark = v
	case FieldRecordedAt:
		if t, err := time.ParseInLocation(recordedAtLayout, v, time.Local); err == nil {
			e.RecordedAt = t
		}
	}
}
