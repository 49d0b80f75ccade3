// Package config loads the quicktip server configuration.
//
// The configuration is stored in quicktip.json next to the page it serves.
// This package handles loading, saving, validating and translating it into
// dispatcher and panel settings.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "metrics": true
//	  },
//	  "tips": {
//	    "showDelay": "500ms",
//	    "hideDelay": "200ms",
//	    "dismissDelay": "5s",
//	    "quickShowInterval": "250ms",
//	    "mouseOffset": [15, 18],
//	    "interceptTitles": true,
//	    "trackMouse": false
//	  },
//	  "panel": {
//	    "minWidth": 40,
//	    "maxWidth": 300,
//	    "constrain": true
//	  },
//	  "catalog": {
//	    "path": "tips.yaml",
//	    "watch": true
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	d := quicktip.New(doc, p, cfg.DispatcherOptions()...)
package config
