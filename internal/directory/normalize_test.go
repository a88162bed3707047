package directory

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNormalizeApplicationFillsDefaults(t *testing.T) {
	t.Parallel()

	rec, err := normalizeRaw(json.RawMessage(`{"id":"obj-1","appId":"app-1"}`), applicationSchema)
	if err != nil {
		t.Fatalf("normalizeRaw: %v", err)
	}

	if got := rec["displayName"]; got != "" {
		t.Fatalf("displayName = %v, want empty string", got)
	}
	if got := rec["createdDateTime"]; got != "" {
		t.Fatalf("createdDateTime = %v, want empty string", got)
	}
	tags, ok := rec["tags"].([]string)
	if !ok || len(tags) != 0 {
		t.Fatalf("tags = %#v, want empty string list", rec["tags"])
	}
	for _, f := range applicationSchema {
		if _, ok := rec[f.Key]; !ok {
			t.Fatalf("missing key %q", f.Key)
		}
	}
}

func TestNormalizeSignInMinimalPayload(t *testing.T) {
	t.Parallel()

	rec, err := normalizeRaw(json.RawMessage(`{"id":"s-1"}`), signInSchema)
	if err != nil {
		t.Fatalf("normalizeRaw: %v", err)
	}

	if got := rec["isInteractive"]; got != false {
		t.Fatalf("isInteractive = %v, want false", got)
	}

	status, ok := rec["status"].(Record)
	if !ok {
		t.Fatalf("status = %#v, want record", rec["status"])
	}
	if got := status["errorCode"]; got != float64(0) {
		t.Fatalf("status.errorCode = %v, want 0", got)
	}
	if got := status["failureReason"]; got != "" {
		t.Fatalf("status.failureReason = %v, want empty string", got)
	}

	device, ok := rec["deviceDetail"].(Record)
	if !ok || len(device) != 0 {
		t.Fatalf("deviceDetail = %#v, want empty record", rec["deviceDetail"])
	}
	location, ok := rec["location"].(Record)
	if !ok || len(location) != 0 {
		t.Fatalf("location = %#v, want empty record", rec["location"])
	}

	risk, ok := rec["riskInformation"].(Record)
	if !ok {
		t.Fatalf("riskInformation = %#v, want record", rec["riskInformation"])
	}
	types, ok := risk["riskEventTypes"].([]string)
	if !ok || len(types) != 0 {
		t.Fatalf("riskEventTypes = %#v, want empty string list", risk["riskEventTypes"])
	}

	encoded, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	if strings.Contains(string(encoded), "null") {
		t.Fatalf("normalized record contains null: %s", encoded)
	}
}

func TestNormalizeSignInNestedPayload(t *testing.T) {
	t.Parallel()

	raw := json.RawMessage(`{
		"id": "s-2",
		"isInteractive": true,
		"riskState": "atRisk",
		"riskEventTypes_v2": ["unfamiliarFeatures", "anonymizedIPAddress"],
		"status": {"errorCode": 50126, "failureReason": "Invalid credentials"},
		"deviceDetail": {"operatingSystem": "Linux", "isCompliant": true},
		"location": {
			"city": "Oslo",
			"countryOrRegion": "NO",
			"geoCoordinates": {"latitude": 59.9, "longitude": 10.7}
		}
	}`)
	rec, err := normalizeRaw(raw, signInSchema)
	if err != nil {
		t.Fatalf("normalizeRaw: %v", err)
	}

	if got := rec["isInteractive"]; got != true {
		t.Fatalf("isInteractive = %v, want true", got)
	}
	status := rec["status"].(Record)
	if got := status["errorCode"]; got != float64(50126) {
		t.Fatalf("status.errorCode = %v", got)
	}
	if got := status["additionalDetails"]; got != "" {
		t.Fatalf("status.additionalDetails = %v, want empty string", got)
	}
	device := rec["deviceDetail"].(Record)
	if got := device["operatingSystem"]; got != "Linux" {
		t.Fatalf("deviceDetail.operatingSystem = %v", got)
	}
	if got := device["isManaged"]; got != false {
		t.Fatalf("deviceDetail.isManaged = %v, want false", got)
	}
	location := rec["location"].(Record)
	coords := location["coordinates"].(Record)
	if got := coords["latitude"]; got != 59.9 {
		t.Fatalf("coordinates.latitude = %v", got)
	}
	risk := rec["riskInformation"].(Record)
	if got := risk["riskState"]; got != "atRisk" {
		t.Fatalf("riskState = %v", got)
	}
	types := risk["riskEventTypes"].([]string)
	if len(types) != 2 || types[0] != "unfamiliarFeatures" {
		t.Fatalf("riskEventTypes = %#v", types)
	}
}

func TestNormalizeAuditEventNestedPayload(t *testing.T) {
	t.Parallel()

	raw := json.RawMessage(`{
		"id": "a-1",
		"activityDisplayName": "Update application",
		"result": "success",
		"initiatedBy": {
			"user": {"id": "u-1", "displayName": "Ada", "userPrincipalName": "ada@example.com"}
		},
		"targetResources": [
			{
				"id": "t-1",
				"displayName": "My App",
				"type": "Application",
				"modifiedProperties": [
					{"displayName": "DisplayName", "oldValue": "\"Old\"", "newValue": "\"New\""}
				]
			}
		],
		"additionalDetails": [
			{"key": "UserType", "value": "Member"}
		]
	}`)
	rec, err := normalizeRaw(raw, directoryAuditSchema)
	if err != nil {
		t.Fatalf("normalizeRaw: %v", err)
	}

	initiatedBy := rec["initiatedBy"].(Record)
	user := initiatedBy["user"].(Record)
	if got := user["userPrincipalName"]; got != "ada@example.com" {
		t.Fatalf("initiatedBy.user.userPrincipalName = %v", got)
	}
	app, ok := initiatedBy["app"].(Record)
	if !ok || len(app) != 0 {
		t.Fatalf("initiatedBy.app = %#v, want empty record", initiatedBy["app"])
	}

	targets := rec["targetResources"].([]Record)
	if len(targets) != 1 {
		t.Fatalf("targetResources = %#v", targets)
	}
	props := targets[0]["modifiedProperties"].([]Record)
	if len(props) != 1 || props[0]["newValue"] != `"New"` {
		t.Fatalf("modifiedProperties = %#v", props)
	}

	details := rec["additionalDetails"].([]Record)
	if len(details) != 1 || details[0]["key"] != "UserType" {
		t.Fatalf("additionalDetails = %#v", details)
	}
	if got := rec["operationType"]; got != "" {
		t.Fatalf("operationType = %v, want empty string", got)
	}
}

func TestNormalizeAuditEventMissingCollections(t *testing.T) {
	t.Parallel()

	rec, err := normalizeRaw(json.RawMessage(`{"id":"a-2"}`), directoryAuditSchema)
	if err != nil {
		t.Fatalf("normalizeRaw: %v", err)
	}

	initiatedBy, ok := rec["initiatedBy"].(Record)
	if !ok || len(initiatedBy) != 0 {
		t.Fatalf("initiatedBy = %#v, want empty record", rec["initiatedBy"])
	}
	targets, ok := rec["targetResources"].([]Record)
	if !ok || len(targets) != 0 {
		t.Fatalf("targetResources = %#v, want empty list", rec["targetResources"])
	}
	details, ok := rec["additionalDetails"].([]Record)
	if !ok || len(details) != 0 {
		t.Fatalf("additionalDetails = %#v, want empty list", rec["additionalDetails"])
	}
}

func TestToStringStringifiesScalars(t *testing.T) {
	t.Parallel()

	if got := toString(nil); got != "" {
		t.Fatalf("toString(nil) = %q", got)
	}
	if got := toString("x"); got != "x" {
		t.Fatalf("toString(x) = %q", got)
	}
	if got := toString(float64(7)); got != "7" {
		t.Fatalf("toString(7) = %q", got)
	}
	if got := toString(true); got != "true" {
		t.Fatalf("toString(true) = %q", got)
	}
}
