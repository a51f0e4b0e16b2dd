package cardpayment

const (
	PayPath             = "/api/cardPayment"
	TokenPath           = "/api/cardPayment/token"
	ProvisionCommitPath = "/api/cardPayment/provisionCommit"
	InstallmentsPath    = "/api/cardPayment/installments"
)
