// Package dto defines form objects for the songs feature's HTTP transport layer.
package dto

// SongForm represents the song submission form posted to /song/add.
// Minutes and seconds are each constrained to [0,59], mirroring the two
// duration inputs on the form.
type SongForm struct {
	Title   string `form:"title" binding:"required,min=2"`
	Minutes int    `form:"minutes" binding:"gte=0,lte=59"`
	Seconds int    `form:"seconds" binding:"gte=0,lte=59"`
	Genre   string `form:"genre" binding:"required"`
}
