// Package status reads the account status of the current user from the
// remote service and renders it for display.
//
// Status is advisory. Library operations never wait on a fetch and never
// branch on its result; the CLI fetches in the background and prints the
// badge when it arrives.
package status
