package category

import "github.com/unbound-force/clauserisk/internal/taxonomy"

// cuadLabels maps the fine-grained CUAD clause labels emitted by the
// upstream classifier onto canonical categories. CUAD has no explicit
// privacy labels; privacy risk is reached through text detection.
var cuadLabels = map[string]taxonomy.Category{
	"Uncapped Liability":  taxonomy.LiabilityRisk,
	"Cap On Liability":    taxonomy.LiabilityRisk,
	"Covenant Not To Sue": taxonomy.LiabilityRisk,
	"Insurance":           taxonomy.LiabilityRisk,
	"Warranty Duration":   taxonomy.LiabilityRisk,

	"Termination For Convenience":        taxonomy.TerminationRisk,
	"Change Of Control":                  taxonomy.TerminationRisk,
	"Post-Termination Services":          taxonomy.TerminationRisk,
	"Notice Period To Terminate Renewal": taxonomy.TerminationRisk,
	"Expiration Date":                    taxonomy.TerminationRisk,
	"Renewal Term":                       taxonomy.TerminationRisk,

	"Liquidated Damages":     taxonomy.PaymentRisk,
	"Minimum Commitment":     taxonomy.PaymentRisk,
	"Price Restrictions":     taxonomy.PaymentRisk,
	"Revenue/Profit Sharing": taxonomy.PaymentRisk,
	"Volume Restriction":     taxonomy.PaymentRisk,
	"Most Favored Nation":    taxonomy.PaymentRisk,

	"Ip Ownership Assignment":           taxonomy.IPRisk,
	"Joint Ip Ownership":                taxonomy.IPRisk,
	"Irrevocable Or Perpetual License":  taxonomy.IPRisk,
	"License Grant":                     taxonomy.IPRisk,
	"Non-Transferable License":          taxonomy.IPRisk,
	"Affiliate License-Licensee":        taxonomy.IPRisk,
	"Affiliate License-Licensor":        taxonomy.IPRisk,
	"Unlimited/All-You-Can-Eat-License": taxonomy.IPRisk,
	"Source Code Escrow":                taxonomy.IPRisk,

	"Document Name":                     taxonomy.Neutral,
	"Parties":                           taxonomy.Neutral,
	"Agreement Date":                    taxonomy.Neutral,
	"Effective Date":                    taxonomy.Neutral,
	"Governing Law":                     taxonomy.Neutral,
	"Exclusivity":                       taxonomy.Neutral,
	"No-Solicit Of Customers":           taxonomy.Neutral,
	"No-Solicit Of Employees":           taxonomy.Neutral,
	"Rofr/Rofo/Rofn":                    taxonomy.Neutral,
	"Anti-Assignment":                   taxonomy.Neutral,
	"Audit Rights":                      taxonomy.Neutral,
	"Non-Compete":                       taxonomy.Neutral,
	"Competitive Restriction Exception": taxonomy.Neutral,
	"Third Party Beneficiary":           taxonomy.Neutral,
	"Non-Disparagement":                 taxonomy.Neutral,
}

// Labels returns a copy of the built-in raw label table.
func Labels() map[string]taxonomy.Category {
	out := make(map[string]taxonomy.Category, len(cuadLabels))
	for k, v := range cuadLabels {
		out[k] = v
	}
	return out
}
