package wompi

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/juan2005elpapu/webjanaypedidos/internal/constants"
)

const (
	sandboxBaseURL    = "https://sandbox.wompi.co/v1"
	productionBaseURL = "https://production.wompi.co/v1"

	checkoutURL = "https://checkout.wompi.co/p/"

	requestTimeout = 15 * time.Second
)

var (
	ErrConfigInvalid   = errors.New("wompi config invalid")
	ErrRequestFailed   = errors.New("wompi request failed")
	ErrResponseInvalid = errors.New("wompi response invalid")
)

// Config credenciales y ambiente de la pasarela Wompi
type Config struct {
	Environment  string `json:"environment"` // test / production
	PublicKey    string `json:"public_key"`
	PrivateKey   string `json:"private_key"`
	IntegrityKey string `json:"integrity_key"`
	EventKey     string `json:"event_key"`
}

// ValidateConfig verifica las credenciales mínimas para operar
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.PublicKey) == "" {
		return fmt.Errorf("%w: public_key is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.IntegrityKey) == "" {
		return fmt.Errorf("%w: integrity_key is required", ErrConfigInvalid)
	}
	switch cfg.Environment {
	case constants.WompiEnvironmentTest, constants.WompiEnvironmentProduction:
	default:
		return fmt.Errorf("%w: environment must be test or production", ErrConfigInvalid)
	}
	return nil
}

// BaseURL endpoint del API según el ambiente configurado
func (c *Config) BaseURL() string {
	if c.Environment == constants.WompiEnvironmentProduction {
		return productionBaseURL
	}
	return sandboxBaseURL
}

// CheckoutURL URL base del checkout alojado de Wompi
func CheckoutURL() string {
	return checkoutURL
}

// MerchantInfo datos del comercio devueltos por el endpoint de merchants
type MerchantInfo struct {
	ID                    int64  `json:"id"`
	Name                  string `json:"name"`
	Email                 string `json:"email"`
	AcceptanceToken       string `json:"acceptance_token"`
	AcceptancePermalink   string `json:"acceptance_permalink"`
	PersonalDataToken     string `json:"personal_data_token"`
	PersonalDataPermalink string `json:"personal_data_permalink"`
}

// TransactionInfo transacción consultada en la pasarela
type TransactionInfo struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	StatusMessage string `json:"status_message"`
	Reference     string `json:"reference"`
	AmountInCents int64  `json:"amount_in_cents"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"payment_method_type"`
	CustomerEmail string `json:"customer_email"`
	FinalizedAt   string `json:"finalized_at"`
}

// GetMerchantAcceptance consulta los tokens de aceptación del comercio.
// Wompi exige presentarlos en el checkout antes de cobrar.
func GetMerchantAcceptance(ctx context.Context, cfg *Config) (*MerchantInfo, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	endpoint := cfg.BaseURL() + "/merchants/" + strings.TrimSpace(cfg.PublicKey)
	body, err := getJSON(ctx, endpoint, "")
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data MerchantInfo `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if resp.Data.AcceptanceToken == "" {
		return nil, fmt.Errorf("%w: missing acceptance token", ErrResponseInvalid)
	}
	return &resp.Data, nil
}

// GetTransactionInformation consulta una transacción por su ID.
// Usa la llave privada cuando existe; la pública basta en sandbox.
func GetTransactionInformation(ctx context.Context, cfg *Config, transactionID string) (*TransactionInfo, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return nil, fmt.Errorf("%w: transaction id is required", ErrConfigInvalid)
	}

	bearer := strings.TrimSpace(cfg.PrivateKey)
	if bearer == "" {
		bearer = strings.TrimSpace(cfg.PublicKey)
	}

	endpoint := cfg.BaseURL() + "/transactions/" + transactionID
	body, err := getJSON(ctx, endpoint, bearer)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data TransactionInfo `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if resp.Data.ID == "" {
		return nil, fmt.Errorf("%w: missing transaction data", ErrResponseInvalid)
	}
	return &resp.Data, nil
}

// ComputeIntegritySignature firma de integridad del checkout:
// sha256 hex de referencia + monto en centavos + moneda + llave de integridad.
func ComputeIntegritySignature(reference string, amountInCents int64, currency string, integrityKey string) string {
	payload := fmt.Sprintf("%s%d%s%s", reference, amountInCents, currency, integrityKey)
	digest := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(digest[:])
}

// VerifyEventSignature valida la firma HMAC-SHA256 de un evento de webhook.
// Acepta el prefijo opcional "sha256=" y compara en tiempo constante.
// Entradas malformadas devuelven false, nunca pánico ni error.
func VerifyEventSignature(payload []byte, signature string, eventKey string) bool {
	signature = strings.TrimSpace(signature)
	signature = strings.TrimPrefix(signature, "sha256=")
	if len(payload) == 0 || signature == "" || eventKey == "" {
		return false
	}
	provided, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(eventKey))
	mac.Write(payload)
	return hmac.Equal(provided, mac.Sum(nil))
}

// IsApproved indica si el estado de la transacción es aprobado
func IsApproved(status string) bool {
	return strings.ToUpper(strings.TrimSpace(status)) == constants.WompiTxStatusApproved
}

// IsFinalFailure indica si el estado cierra la transacción sin pago
func IsFinalFailure(status string) bool {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case constants.WompiTxStatusDeclined, constants.WompiTxStatusError, constants.WompiTxStatusVoided:
		return true
	default:
		return false
	}
}

// DetectKeyEnvironment deduce el ambiente a partir del prefijo de la llave.
// Las llaves de Wompi llevan el ambiente embebido (pub_test_, prv_prod_).
func DetectKeyEnvironment(key string) string {
	key = strings.TrimSpace(key)
	if strings.Contains(key, "_prod_") {
		return constants.WompiEnvironmentProduction
	}
	if strings.Contains(key, "_test_") {
		return constants.WompiEnvironmentTest
	}
	return ""
}

// SplitPhoneNumber separa el indicativo de Colombia del número local
func SplitPhoneNumber(phone string) (prefix string, local string) {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if strings.HasPrefix(cleaned, "57") && len(cleaned) > 10 {
		return "57", cleaned[2:]
	}
	return "57", cleaned
}

func getJSON(ctx context.Context, endpoint string, bearer string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	client := &http.Client{Timeout: requestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}
	return body, nil
}
