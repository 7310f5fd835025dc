package cmd

// DCSO hostnamer
// Copyright (c) 2026, DCSO GmbH

import (
	"github.com/DCSO/hostnamer/util"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func makeResolver() (*util.DoHResolver, error) {
	var client = util.MakeHTTPClient(viper.GetDuration("doh.timeout"), nil)
	rcas := viper.GetStringSlice("doh.rootcas")
	insecure := viper.GetBool("doh.insecure")
	if len(rcas) > 0 || insecure {
		tlsConfig, err := util.MakeTLSConfig("", "", rcas, insecure)
		if err != nil {
			return nil, err
		}
		client = util.MakeHTTPClient(viper.GetDuration("doh.timeout"), tlsConfig)
	}
	r := util.MakeDoHResolver(viper.GetString("doh.endpoint"), client)
	r.AllowIPv6 = viper.GetBool("doh.ipv6")
	r.StripTrailingDot = viper.GetBool("doh.strip-dot")
	log.WithFields(log.Fields{
		"endpoint": r.Endpoint,
		"ipv6":     r.AllowIPv6,
	}).Debug("resolver configured")
	return r, nil
}

func makeHostNamer() (util.HostNamer, error) {
	if viper.GetBool("doh.system-resolver") {
		log.Info("using system resolver for reverse lookups")
		return util.NewHostNamerRDNS(), nil
	}
	r, err := makeResolver()
	if err != nil {
		return nil, err
	}
	return r, nil
}
