// Package forms validates panel input and builds request payloads.
//
// Checks run in a fixed order and stop at the first failure: phone format,
// blank text, text length, record id, then the struct tags of the payload.
// Nothing here touches the network.
package forms
