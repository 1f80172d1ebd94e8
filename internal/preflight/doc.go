// Package preflight provides readiness checks for the download server and
// the local directories vidgrab writes to.
//
// These checks run in two contexts:
//   - The CLI "vidgrab status" command runs RunAll and prints each result.
//   - The fetch package calls CheckDirectoryAccess before saving a file so a
//     read-only destination fails before any bytes are transferred.
package preflight
