package engine

import (
	"fmt"
	"strings"
)

// CombinationExtension is the extension checked for prefix/suffix combinations.
const CombinationExtension = ".com.br"

// checkoutTemplate is the registrar cart URL; sld and tld are substituted verbatim.
const checkoutTemplate = "https://checkout.hostgator.com.br/?a=add&sld=%s&tld=%s"

// NameExtensions are the extensions a single name is expanded across, in output order.
var NameExtensions = []string{".com.br", ".com", ".net", ".org"}

// CheckoutURL builds the purchase link for name under extension.
func CheckoutURL(name, extension string) string {
	return fmt.Sprintf(checkoutTemplate, strings.ToLower(name), extension)
}
