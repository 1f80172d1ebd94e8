// Package fetch retrieves finished files from the download server's
// /downloads/{filename} endpoint into a local directory.
package fetch
