// Package catalog loads tip registrations from YAML, JSON or TOML documents.
//
// A catalog lists tips by target element id:
//
//	tips:
//	  - targets: [save, save-as]
//	    text: Save the document
//	    title: Save
//	    anchor: top
//	  - targets: [delete]
//	    text: Delete permanently
//	    autoHide: false
//	    showDelay: 1s
//
// Catalogs come from a local file (FileSource, reloaded on change through
// fsnotify) or an S3 object (S3Source, polled by ETag). Apply registers a
// catalog with a dispatcher and unregisters targets dropped since the
// previous version.
package catalog
