package invoice

import "regexp"

// amountPattern is a printed amount with up to three thousands separators.
const amountPattern = `\d*,?\d*,?\d*,?\d+\.?\d*`

var (
	invoiceNoRe = regexp.MustCompile(`Invoice No.\s*:\s*(?P<no>\d+)`)
	dateRe      = regexp.MustCompile(`Date\s*:\s*(?P<date>\d{2}-\d{2}-\d{4})`)
	subtotalRe  = regexp.MustCompile(`Sub Total\W*(?P<subtotal>` + amountPattern + `)`)

	taxRe = regexp.MustCompile(`(?P<kind>SGST|CGST)@(?P<rate>\d+.?\d*%?)\W*(?P<amount>` + amountPattern + `)`)

	roundOffRe = regexp.MustCompile(`Round\s*off\s*(?P<minus>-?)\s*\W*(?P<roundoff>` + amountPattern + `)`)

	// RE2 has no lookbehind: matches carrying the sub group are "Sub Total"
	// lines and are skipped by the caller.
	totalRe = regexp.MustCompile(`(?P<sub>Sub\s)?Total(?:\s*₹|₨)\W*(?P<total>` + amountPattern + `)`)

	// Descriptions may carry any script: \w is ASCII only in RE2.
	itemRe = regexp.MustCompile(`(?P<n>\d)\s*(?P<item>gold|silver)(?P<desc>\s[\pL\pM\pN_.\s\pZ&]*\s)\s*` +
		`(?P<quantity>\d+\.?\d*)\s?(?P<unit>gm|Gm)\s?[₹₨.]*\s(?P<unitprice>` + amountPattern + `)\s?[₹₨.]*\s` +
		`((?P<discount>` + amountPattern + `)\s?\(\d%\))*[₹₨\s.]*(?P<amount>` + amountPattern + `)+`)
)

// group returns the named submatch of m, or "" when it did not participate.
func group(re *regexp.Regexp, m []string, name string) string {
	i := re.SubexpIndex(name)
	if i < 0 || i >= len(m) {
		return ""
	}
	return m[i]
}
