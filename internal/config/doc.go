// Package config provides configuration parsing for tether.
//
// The configuration is stored in tether.json. Every field is optional.
//
//	{
//	  "log": {
//	    "level": "debug",
//	    "format": "json"
//	  },
//	  "metrics": {
//	    "namespace": "shop",
//	    "subsystem": "pages"
//	  },
//	  "tracing": {
//	    "tracerName": "shop"
//	  },
//	  "serve": {
//	    "host": "0.0.0.0",
//	    "port": 8080
//	  },
//	  "data": "./data/home.yaml"
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Address:", cfg.Address())
package config
