package handler

import (
	"github.com/carlosabalde/wurfl-go/pkg/classifier"
	"github.com/carlosabalde/wurfl-go/pkg/deviceid"
	"github.com/carlosabalde/wurfl-go/pkg/normalizer"
)

// The handlers in this file cover single-manufacturer families with no
// bespoke conclusive/recovery behavior: a can_handle keyword check plus the
// shared default
// cascade (RIS-first-slash conclusive, no recovery override) is everything
// the source does for them too.
type trivialSpec struct {
	name     string
	keywords []string
	fallback deviceid.ID
}

var trivialHandlerSpecs = []trivialSpec{
	{"Alcatel", []string{"Alcatel"}, deviceid.GenericMobile},
	{"BenQ", []string{"BenQ"}, deviceid.GenericMobile},
	{"Grundig", []string{"Grundig"}, deviceid.GenericMobile},
	{"HTC", []string{"HTC"}, deviceid.GenericMobile},
	{"KDDI", []string{"KDDI-"}, deviceid.GenericMobile},
	{"Kyocera", []string{"Kyocera"}, deviceid.GenericMobile},
	{"LG", []string{"LG-", "LG/", "LGE-"}, deviceid.GenericMobile},
	{"Mitsubishi", []string{"Mitsubishi"}, deviceid.GenericMobile},
	{"Nec", []string{"NEC-"}, deviceid.GenericMobile},
	{"Nintendo", []string{"Nintendo"}, deviceid.GenericMobile},
	{"Panasonic", []string{"Panasonic"}, deviceid.GenericMobile},
	{"Pantech", []string{"PANTECH", "Pantech"}, deviceid.GenericMobile},
	{"Philips", []string{"Philips"}, deviceid.GenericMobile},
	{"Portalmmm", []string{"portalmmm"}, deviceid.GenericMobile},
	{"Qtek", []string{"Qtek"}, deviceid.GenericMobile},
	{"Reksio", []string{"Reksio"}, deviceid.GenericMobile},
	{"Sagem", []string{"Sagem"}, deviceid.GenericMobile},
	{"Sanyo", []string{"Sanyo"}, deviceid.GenericMobile},
	{"Sharp", []string{"Sharp"}, deviceid.GenericMobile},
	{"Siemens", []string{"Siemens"}, deviceid.GenericMobile},
	{"SPV", []string{"SPV"}, deviceid.GenericMobile},
	{"Toshiba", []string{"Toshiba"}, deviceid.GenericMobile},
	{"Vodafone", []string{"Vodafone"}, deviceid.GenericMobile},
}

func newTrivialHandler(spec trivialSpec) *Handler {
	keywords := spec.keywords
	h := NewHandler(spec.name, func(ua string, ctx *classifier.Context) bool {
		return containsAny(ua, keywords...)
	}, normalizer.Generic())
	h.Default = spec.fallback
	return h
}
