package wompi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/juan2005elpapu/webjanaypedidos/internal/constants"
)

func signPayload(t *testing.T, payload []byte, key string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyEventSignature(t *testing.T) {
	payload := []byte(`{"event":"transaction.updated","data":{"transaction":{"id":"1234-tx"}}}`)
	key := "test_events_secret"
	signature := signPayload(t, payload, key)

	if !VerifyEventSignature(payload, signature, key) {
		t.Fatal("valid signature rejected")
	}
	if !VerifyEventSignature(payload, "sha256="+signature, key) {
		t.Fatal("valid signature with sha256 prefix rejected")
	}
	if !VerifyEventSignature(payload, "  "+signature+" ", key) {
		t.Fatal("valid signature with surrounding spaces rejected")
	}
}

func TestVerifyEventSignatureRejects(t *testing.T) {
	payload := []byte(`{"event":"transaction.updated"}`)
	key := "test_events_secret"
	signature := signPayload(t, payload, key)

	tampered := append([]byte{}, payload...)
	tampered[0] ^= 0x01

	cases := []struct {
		name      string
		payload   []byte
		signature string
		key       string
	}{
		{"payload alterado", tampered, signature, key},
		{"llave equivocada", payload, signature, "other_secret"},
		{"firma truncada", payload, signature[:len(signature)-2], key},
		{"firma no hexadecimal", payload, "zz" + signature[2:], key},
		{"firma vacía", payload, "", key},
		{"payload vacío", nil, signature, key},
		{"llave vacía", payload, signature, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if VerifyEventSignature(tc.payload, tc.signature, tc.key) {
				t.Fatal("invalid signature accepted")
			}
		})
	}
}

func TestComputeIntegritySignature(t *testing.T) {
	// sha256("JY260830001" + "6500000" + "COP" + "test_integrity")
	got := ComputeIntegritySignature("JY260830001", 6500000, "COP", "test_integrity")

	digest := sha256.Sum256([]byte("JY260830001" + "6500000" + "COP" + "test_integrity"))
	want := hex.EncodeToString(digest[:])
	if got != want {
		t.Fatalf("unexpected integrity signature: %s", got)
	}
	if len(got) != 64 {
		t.Fatalf("unexpected signature length: %d", len(got))
	}

	other := ComputeIntegritySignature("JY260830002", 6500000, "COP", "test_integrity")
	if other == got {
		t.Fatal("different references produced the same signature")
	}
}

func TestValidateConfig(t *testing.T) {
	valid := &Config{
		Environment:  constants.WompiEnvironmentTest,
		PublicKey:    "pub_test_abc",
		IntegrityKey: "test_integrity",
	}
	if err := ValidateConfig(valid); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name string
		cfg  *Config
	}{
		{"nil", nil},
		{"sin llave pública", &Config{Environment: "test", IntegrityKey: "k"}},
		{"sin llave de integridad", &Config{Environment: "test", PublicKey: "pub_test_abc"}},
		{"ambiente inválido", &Config{Environment: "staging", PublicKey: "pub_test_abc", IntegrityKey: "k"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateConfig(tc.cfg); err == nil {
				t.Fatal("invalid config accepted")
			}
		})
	}
}

func TestBaseURLPerEnvironment(t *testing.T) {
	testCfg := &Config{Environment: constants.WompiEnvironmentTest}
	if testCfg.BaseURL() != "https://sandbox.wompi.co/v1" {
		t.Fatalf("unexpected sandbox url: %s", testCfg.BaseURL())
	}
	prodCfg := &Config{Environment: constants.WompiEnvironmentProduction}
	if prodCfg.BaseURL() != "https://production.wompi.co/v1" {
		t.Fatalf("unexpected production url: %s", prodCfg.BaseURL())
	}
}

func TestDetectKeyEnvironment(t *testing.T) {
	if env := DetectKeyEnvironment("pub_test_abc123"); env != constants.WompiEnvironmentTest {
		t.Fatalf("unexpected env for test key: %s", env)
	}
	if env := DetectKeyEnvironment("prv_prod_abc123"); env != constants.WompiEnvironmentProduction {
		t.Fatalf("unexpected env for prod key: %s", env)
	}
	if env := DetectKeyEnvironment("whatever"); env != "" {
		t.Fatalf("unexpected env for unknown key: %s", env)
	}
}

func TestTransactionStatusHelpers(t *testing.T) {
	if !IsApproved("APPROVED") || !IsApproved(" approved ") {
		t.Fatal("approved status not detected")
	}
	if IsApproved("DECLINED") {
		t.Fatal("declined detected as approved")
	}
	for _, status := range []string{"DECLINED", "ERROR", "VOIDED", "voided"} {
		if !IsFinalFailure(status) {
			t.Fatalf("final failure not detected: %s", status)
		}
	}
	if IsFinalFailure("PENDING") || IsFinalFailure("APPROVED") {
		t.Fatal("non-failure detected as final failure")
	}
}

func TestSplitPhoneNumber(t *testing.T) {
	cases := []struct {
		in         string
		wantPrefix string
		wantLocal  string
	}{
		{"+57 300 123 4567", "57", "3001234567"},
		{"573001234567", "57", "3001234567"},
		{"3001234567", "57", "3001234567"},
		{"(300) 123-4567", "57", "3001234567"},
	}
	for _, tc := range cases {
		prefix, local := SplitPhoneNumber(tc.in)
		if prefix != tc.wantPrefix || local != tc.wantLocal {
			t.Fatalf("SplitPhoneNumber(%q) = %q, %q", tc.in, prefix, local)
		}
	}
}
