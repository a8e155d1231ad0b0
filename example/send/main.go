package main

import (
	"flag"
	"net/http"
	"os"
	"strings"

	"github.com/spacemonkeygo/flagfile"
	"github.com/spacemonkeygo/spacelog"
	"github.com/spacemonkeygo/spacelog/setup"

	gcm "github.com/amozoss/gcm-go"
)

const (
	defaultConfig = "./flags.conf"
)

var (
	apiKey = flag.String("api_key", "", "gcm api key")
	to     = flag.String("to", "", "registration id or /topics/... path")
	title  = flag.String("title", "Hello", "notification title")
	body   = flag.String("body", "", "notification body")
	data   = flag.String("data", "", "comma separated key=value pairs")
	dryRun = flag.Bool("dry_run", false, "validate without delivering")
	logger = spacelog.GetLogger()
)

func main() {
	config := flagfile.OptFlagfile(defaultConfig)
	flagfile.Load(config)
	setup.MustSetup(os.Args[0])

	notification := gcm.NewNotificationBuilder(*title).
		Body(*body).
		Finalize()
	msg := gcm.NewMessage(*to).Notification(notification)
	if *dryRun {
		msg.DryRun(true)
	}
	if *data != "" {
		msg.Data(parseData(*data))
	}

	client := gcm.NewClient(gcm.Endpoint, *apiKey, http.DefaultClient)
	resp, err := client.Send(msg)
	if err != nil {
		logger.Errore(err)
		os.Exit(1)
	}
	if resp.MessageId != nil {
		logger.Noticef("sent, message_id: %d", *resp.MessageId)
		return
	}
	logger.Noticef("sent, success: %d failure: %d canonical_ids: %d",
		resp.Success, resp.Failure, resp.CanonicalIds)
}

func parseData(pairs string) map[string]string {
	data := make(map[string]string)
	for _, pair := range strings.Split(pairs, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			logger.Warnf("skipping malformed pair %q", pair)
			continue
		}
		data[kv[0]] = kv[1]
	}
	return data
}
