package viacep

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/muurk/buscacep/internal/address"
)

// lookupResponse is the JSON object the service returns for one code.
type lookupResponse struct {
	CEP         string   `json:"cep"`
	Logradouro  string   `json:"logradouro"`
	Complemento string   `json:"complemento"`
	Bairro      string   `json:"bairro"`
	Localidade  string   `json:"localidade"`
	UF          string   `json:"uf"`
	IBGE        string   `json:"ibge"`
	DDD         string   `json:"ddd"`
	Erro        flexBool `json:"erro"`
}

func (r lookupResponse) record() address.Record {
	return address.Record{
		PostalCode: address.NormalizePostalCode(r.CEP),
		Street:     r.Logradouro,
		City:       r.Localidade,
		District:   r.Bairro,
		StateCode:  r.UF,
		Complement: r.Complemento,
		IBGE:       r.IBGE,
		DDD:        r.DDD,
	}
}

// flexBool accepts both true and "true"; the service has used both for "erro".
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch strings.ToLower(string(bytes.Trim(data, `"`))) {
	case "true", "1":
		*b = true
	case "false", "0", "", "null":
		*b = false
	default:
		return fmt.Errorf("invalid boolean %s", data)
	}
	return nil
}

// decodeLookup maps a 2xx body to an outcome.
func decodeLookup(body []byte) Outcome {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return EmptyBody()
	}

	var resp lookupResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return TransportError(NewParseError("failed to parse lookup response", err))
	}
	if resp.Erro {
		return EmptyBody()
	}

	return Success(resp.record())
}

// decodeSearch maps a 2xx search body to the valid records it contains.
func decodeSearch(body []byte) ([]address.Record, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var resp []lookupResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, NewParseError("failed to parse search response", err)
	}

	records := make([]address.Record, 0, len(resp))
	for _, r := range resp {
		rec := r.record()
		if rec.Valid() {
			records = append(records, rec)
		}
	}
	return records, nil
}
