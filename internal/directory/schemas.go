package directory

// Field tables for each entity type this service exposes. One table per
// Graph resource; the output key set of a record is exactly the table's keys.

var applicationSchema = []field{
	{Key: "id", Kind: kindString},
	{Key: "appId", Kind: kindString},
	{Key: "displayName", Kind: kindString},
	{Key: "createdDateTime", Kind: kindString},
	{Key: "signInAudience", Kind: kindString},
	{Key: "publisherDomain", Kind: kindString},
	{Key: "tags", Kind: kindStringList},
}

var appRoleAssignmentSchema = []field{
	{Key: "id", Kind: kindString},
	{Key: "createdDateTime", Kind: kindString},
	{Key: "appRoleId", Kind: kindString},
	{Key: "principalDisplayName", Kind: kindString},
	{Key: "principalId", Kind: kindString},
	{Key: "principalType", Kind: kindString},
	{Key: "resourceDisplayName", Kind: kindString},
	{Key: "resourceId", Kind: kindString},
}

var oauth2PermissionGrantSchema = []field{
	{Key: "id", Kind: kindString},
	{Key: "clientId", Kind: kindString},
	{Key: "consentType", Kind: kindString},
	{Key: "principalId", Kind: kindString},
	{Key: "resourceId", Kind: kindString},
	{Key: "scope", Kind: kindString},
}

var directoryAuditSchema = []field{
	{Key: "id", Kind: kindString},
	{Key: "activityDateTime", Kind: kindString},
	{Key: "activityDisplayName", Kind: kindString},
	{Key: "category", Kind: kindString},
	{Key: "operationType", Kind: kindString},
	{Key: "result", Kind: kindString},
	{Key: "resultReason", Kind: kindString},
	{Key: "loggedByService", Kind: kindString},
	{Key: "correlationId", Kind: kindString},
	{Key: "initiatedBy", Kind: kindObject, Schema: []field{
		{Key: "user", Kind: kindObject, Schema: []field{
			{Key: "id", Kind: kindString},
			{Key: "displayName", Kind: kindString},
			{Key: "userPrincipalName", Kind: kindString},
		}},
		{Key: "app", Kind: kindObject, Schema: []field{
			{Key: "appId", Kind: kindString},
			{Key: "displayName", Kind: kindString},
		}},
	}},
	{Key: "targetResources", Kind: kindObjectList, Schema: []field{
		{Key: "id", Kind: kindString},
		{Key: "displayName", Kind: kindString},
		{Key: "type", Kind: kindString},
		{Key: "userPrincipalName", Kind: kindString},
		{Key: "modifiedProperties", Kind: kindObjectList, Schema: []field{
			{Key: "displayName", Kind: kindString},
			{Key: "oldValue", Kind: kindString},
			{Key: "newValue", Kind: kindString},
		}},
	}},
	{Key: "additionalDetails", Kind: kindObjectList, Schema: []field{
		{Key: "key", Kind: kindString},
		{Key: "value", Kind: kindString},
	}},
}

var signInSchema = []field{
	{Key: "id", Kind: kindString},
	{Key: "createdDateTime", Kind: kindString},
	{Key: "userId", Kind: kindString},
	{Key: "userDisplayName", Kind: kindString},
	{Key: "userPrincipalName", Kind: kindString},
	{Key: "appDisplayName", Kind: kindString},
	{Key: "appId", Kind: kindString},
	{Key: "ipAddress", Kind: kindString},
	{Key: "clientAppUsed", Kind: kindString},
	{Key: "correlationId", Kind: kindString},
	{Key: "isInteractive", Kind: kindBool},
	{Key: "resourceDisplayName", Kind: kindString},
	{Key: "status", Kind: kindObject, ZeroFill: true, Schema: []field{
		{Key: "errorCode", Kind: kindNumber},
		{Key: "failureReason", Kind: kindString},
		{Key: "additionalDetails", Kind: kindString},
	}},
	// Risk attributes live at the top level of the sign-in resource but are
	// exposed as one nested mapping.
	{Key: "riskInformation", Source: sourceSelf, Kind: kindObject, Schema: []field{
		{Key: "riskDetail", Kind: kindString},
		{Key: "riskLevelAggregated", Kind: kindString},
		{Key: "riskLevelDuringSignIn", Kind: kindString},
		{Key: "riskState", Kind: kindString},
		{Key: "riskEventTypes", Source: "riskEventTypes_v2", Kind: kindStringList},
	}},
	{Key: "deviceDetail", Kind: kindObject, Schema: []field{
		{Key: "deviceId", Kind: kindString},
		{Key: "displayName", Kind: kindString},
		{Key: "operatingSystem", Kind: kindString},
		{Key: "browser", Kind: kindString},
		{Key: "isCompliant", Kind: kindBool},
		{Key: "isManaged", Kind: kindBool},
		{Key: "trustType", Kind: kindString},
	}},
	{Key: "location", Kind: kindObject, Schema: []field{
		{Key: "city", Kind: kindString},
		{Key: "state", Kind: kindString},
		{Key: "countryOrRegion", Kind: kindString},
		{Key: "coordinates", Source: "geoCoordinates", Kind: kindObject, Schema: []field{
			{Key: "latitude", Kind: kindNumber},
			{Key: "longitude", Kind: kindNumber},
		}},
	}},
}
