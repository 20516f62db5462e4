// Package models defines the persisted records of hrvxo-music.
//
// [PlaylistRecord] captures a playlist created through the service: the YouTube Music playlist
// ID, the submitted title and description, and the ordered video IDs.
//
// Records implement [Model]; the [Repository] interface describes the storage operations the
// repositories package provides for them.
package models
