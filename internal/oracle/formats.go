// Package oracle is the oracle engine (C8): it drives the three
// metamorphic checks spec.md describes — Correctness, Dump/Reload, and
// Settings — each by issuing two correlated statements through a
// client.Client and comparing result digests. Grounded on
// query_oracle.cpp's GenerateCorrectnessTest*/DumpTableContent/
// GenerateFirstSetting family and its ProcessOracleQueryResult verdict.
package oracle

import (
	"fuzzql/internal/catalog"
	"fuzzql/internal/sqltype"
)

// Format names the serialization an export step would use. The generator
// targets database/sql backends (MySQL/SQLite) rather than ClickHouse's own
// FILE()/FORMAT surface, so Format is recorded as oracle metadata (logged
// alongside a run) rather than driving an actual wire format; the pairing
// table and exclusions are still carried faithfully so a future client that
// does speak ClickHouse's FORMAT clause can switch this on directly.
type Format string

// outFormats enumerates the OUT formats query_oracle.cpp's out_in table
// pairs with a matching IN format, grouped by family. ProtobufList and
// RawBLOB are excluded exactly as the original excludes them (ProtobufList
// has no matching reader; RawBLOB serializes the whole row as one value).
var outFormats = []Format{
	"TabSeparated", "TabSeparatedWithNames", "TabSeparatedWithNamesAndTypes",
	"CSV", "CSVWithNames", "CSVWithNamesAndTypes",
	"CustomSeparated", "CustomSeparatedWithNames", "CustomSeparatedWithNamesAndTypes",
	"Values",
	"JSON", "JSONColumns", "JSONColumnsWithMetadata", "JSONCompact", "JSONCompactColumns",
	"JSONEachRow", "JSONStringsEachRow", "JSONCompactEachRow", "JSONCompactEachRowWithNames",
	"JSONCompactEachRowWithNamesAndTypes", "JSONCompactStringsEachRow",
	"JSONCompactStringsEachRowWithNames", "JSONCompactStringsEachRowWithNamesAndTypes",
	"JSONObjectEachRow",
	"BSONEachRow", "TSKV",
	"Protobuf", "ProtobufSingle",
	"Avro", "Parquet", "Arrow", "ArrowStream", "ORC", "Npy",
	"RowBinary", "RowBinaryWithNames", "RowBinaryWithNamesAndTypes",
	"Native", "MsgPack",
}

// PickExportFormat chooses an export format for t, downgrading ArrowStream
// to CSV when t has a UUID column (Arrow has no native UUID logical type),
// mirroring GenerateExportQuery's special case.
func PickExportFormat(idx int, t *catalog.Table) Format {
	f := outFormats[idx%len(outFormats)]
	if f == "ArrowStream" && tableHasUUIDColumn(t) {
		return "CSV"
	}
	return f
}

func tableHasUUIDColumn(t *catalog.Table) bool {
	for _, id := range t.SortedColumnIDs() {
		if sqltype.Unwrap(t.Columns[id].Type).Kind() == sqltype.KindUUID {
			return true
		}
	}
	return false
}
