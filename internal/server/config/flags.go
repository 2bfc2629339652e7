package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/lockstake/internal/flagx"
)

var serverFlags = []string{"-a", "-m", "-d", "-s", "-i", "-u", "-p", "-b", "-g", "-e", "-k", "-n", "-t", "-l", "-v"}

// parseFlags overlays the server's short flags onto config.
//
//	-a string   gRPC bind address (e.g. ":3200")
//	-m string   HTTP status/metrics bind address
//	-d string   database DSN (postgres://... or sqlite://path)
//	-s string   token signing secret
//	-i string   asset id
//	-u -p -b -g -e  S3 user, password, bucket, region, endpoint
//	-k string   archive cron schedule
//	-n int      archive batch size
//	-t duration shutdown timeout
//	-l string   log file (stdout when empty)
//	-v string   log level
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("ledgerd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address")
	fs.StringVar(&config.EndpointAddrHTTP, "m", config.EndpointAddrHTTP, "HTTP status and metrics address")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	fs.StringVar(&config.AssetID, "i", config.AssetID, "asset id")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket; empty disables the archive")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.ArchiveSchedule, "k", config.ArchiveSchedule, "archive cron schedule")
	fs.IntVar(&config.ArchiveBatchSize, "n", config.ArchiveBatchSize, "events per archive object")
	fs.DurationVar(&config.ShutdownTimeout, "t", config.ShutdownTimeout, "graceful shutdown timeout")

	fs.StringVar(&config.LogFile, "l", config.LogFile, "log file")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	return fs.Parse(flagx.FilterArgs(args, serverFlags))
}
