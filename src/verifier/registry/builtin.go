package registry

import "github.com/trustmesh/newsverify/src/verifier/types"

// builtinOutlets is the default allowlist of trusted Indian news outlets.
// Deployments with a database override it via Load.
var builtinOutlets = []Outlet{
	{Domain: "timesofindia.indiatimes.com", Name: "The Times of India", Tier: types.TierHigh},
	{Domain: "thehindu.com", Name: "The Hindu", Tier: types.TierHigh},
	{Domain: "hindustantimes.com", Name: "Hindustan Times", Tier: types.TierHigh},
	{Domain: "indianexpress.com", Name: "The Indian Express", Tier: types.TierHigh},
	{Domain: "ndtv.com", Name: "NDTV", Tier: types.TierHigh},
	{Domain: "economictimes.indiatimes.com", Name: "The Economic Times", Tier: types.TierHigh},
	{Domain: "livemint.com", Name: "Mint", Tier: types.TierHigh},
	{Domain: "deccanherald.com", Name: "Deccan Herald", Tier: types.TierHigh},
	{Domain: "thequint.com", Name: "The Quint", Tier: types.TierMedium},
	{Domain: "thewire.in", Name: "The Wire", Tier: types.TierMedium},
	{Domain: "scroll.in", Name: "Scroll.in", Tier: types.TierMedium},
	{Domain: "news18.com", Name: "News18", Tier: types.TierMedium},
	{Domain: "zeenews.india.com", Name: "Zee News", Tier: types.TierMedium},
	{Domain: "dnaindia.com", Name: "DNA India", Tier: types.TierMedium},
	{Domain: "firstpost.com", Name: "Firstpost", Tier: types.TierMedium},
	{Domain: "businesstoday.in", Name: "Business Today", Tier: types.TierMedium},
	{Domain: "moneycontrol.com", Name: "Moneycontrol", Tier: types.TierMedium},
	{Domain: "outlookindia.com", Name: "Outlook India", Tier: types.TierMedium},
	{Domain: "newslaundry.com", Name: "Newslaundry", Tier: types.TierMedium},
	{Domain: "tribuneindia.com", Name: "The Tribune", Tier: types.TierMedium},
	{Domain: "newindianexpress.com", Name: "The New Indian Express", Tier: types.TierMedium},
	{Domain: "india.com", Name: "India.com", Tier: types.TierLow},
	{Domain: "mumbaimirror.indiatimes.com", Name: "Mumbai Mirror", Tier: types.TierLow},
	{Domain: "freepressjournal.in", Name: "The Free Press Journal", Tier: types.TierLow},
}

// Builtin returns the compiled-in registry.
func Builtin() *Registry {
	return New(builtinOutlets)
}
