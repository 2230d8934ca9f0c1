/*
Package types defines the wire types shared by the dispatcher, the forms and the views.

# Endpoints

Every remote operation is an Endpoint: a path segment under the API base URL
plus an HTTP method. The six operations are test-api-key, get-profile,
get-phones, get-records (GET) and send-sms, send-voice (POST).

# Payloads

SMSRequest and VoiceRequest are flat JSON objects. Optional fields are
omitted when blank, so the server only sees what the user filled in.

# Responses

APIResponse is the envelope every endpoint returns:

	{"success": true, "message": "...", "data": ...}
	{"success": false, "error": "..."}

The data payload is kept as raw JSON and rendered verbatim.

RequestResult carries transport details (status, timing, sizes, raw body)
for display next to the response.
*/
package types
