// Package config loads the application configuration.
//
// Values come from struct defaults, then an optional YAML file, then the
// environment, each layer overriding the previous one:
//
//	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
//
//	# config.yaml
//	app:
//	  home: /pages
//	  debug: true
//	db:
//	  driver: sqlite
//	  dsn: app.db
//	jobs:
//	  schedules:
//	    /reports/rebuild: "@hourly"
//
// Environment names are listed in the env tags of each section, for example
// APP_HOME, DATABASE_DSN and SESSION_NAME.
package config
