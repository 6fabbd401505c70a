package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTypeDetail(t *testing.T) {
	for _, typ := range ComplaintTypes {
		t.Run(string(typ), func(t *testing.T) {
			detail, err := NewTypeDetail(typ)
			require.NoError(t, err)
			assert.Equal(t, typ, detail.DetailType())
		})
	}

	t.Run("unrecognized type is rejected", func(t *testing.T) {
		_, err := NewTypeDetail("traffic-violation")
		assert.Error(t, err)
	})
}

func TestDecodeTypeDetail(t *testing.T) {
	t.Run("decodes into the matching variant", func(t *testing.T) {
		raw := json.RawMessage(`{"full_name":"Maria dos Santos","age":12,"last_seen_location":"Mercado do Kikolo"}`)
		detail, err := DecodeTypeDetail(TypeMissingPerson, raw)
		require.NoError(t, err)

		mp, ok := detail.(*MissingPersonDetails)
		require.True(t, ok)
		assert.Equal(t, "Maria dos Santos", mp.FullName)
		require.NotNil(t, mp.Age)
		assert.Equal(t, 12, *mp.Age)
	})

	t.Run("empty payload yields empty variant", func(t *testing.T) {
		detail, err := DecodeTypeDetail(TypeCorruption, nil)
		require.NoError(t, err)
		assert.IsType(t, &CorruptionDetails{}, detail)
	})

	t.Run("unknown type rejected before decoding", func(t *testing.T) {
		_, err := DecodeTypeDetail("vandalism", json.RawMessage(`{"anything":1}`))
		assert.Error(t, err)
	})

	t.Run("malformed JSON rejected", func(t *testing.T) {
		_, err := DecodeTypeDetail(TypeCyberCrime, json.RawMessage(`{"cyber_crime_type":`))
		assert.Error(t, err)
	})

	t.Run("type mismatch drops foreign fields", func(t *testing.T) {
		raw := json.RawMessage(`{"crime_type":"Roubo"}`)
		detail, err := DecodeTypeDetail(TypeCorruption, raw)
		require.NoError(t, err)
		corr := detail.(*CorruptionDetails)
		assert.Empty(t, corr.CorruptionType)
	})
}

func TestDetailSummaries(t *testing.T) {
	date := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	location := "Rangel, Luanda"

	t.Run("missing person with data", func(t *testing.T) {
		d := &MissingPersonDetails{FullName: "Maria dos Santos"}
		name, info := d.Summary(&Complaint{IncidentDate: &date})
		assert.Equal(t, "Maria dos Santos", name)
		assert.Equal(t, "Última vez vista: 2025-03-07", info)
	})

	t.Run("missing person fallbacks", func(t *testing.T) {
		name, info := (&MissingPersonDetails{}).Summary(&Complaint{})
		assert.Equal(t, "Pessoa desaparecida", name)
		assert.Equal(t, "Última vez vista: Data não informada", info)
	})

	t.Run("common crime", func(t *testing.T) {
		d := &CommonCrimeDetails{CrimeType: "Roubo"}
		name, info := d.Summary(&Complaint{Location: &location})
		assert.Equal(t, "Roubo", name)
		assert.Equal(t, "Local: Rangel, Luanda", info)
	})

	t.Run("common crime fallbacks", func(t *testing.T) {
		name, info := (&CommonCrimeDetails{}).Summary(&Complaint{})
		assert.Equal(t, "Crime comum", name)
		assert.Equal(t, "Local: Local não informado", info)
	})

	t.Run("corruption uses institution as display name", func(t *testing.T) {
		inst := "Administração Municipal"
		name, info := (&CorruptionDetails{Institution: &inst}).Summary(nil)
		assert.Equal(t, inst, name)
		assert.Equal(t, "Instituição: "+inst, info)
	})

	t.Run("corruption fallbacks", func(t *testing.T) {
		name, info := (&CorruptionDetails{}).Summary(nil)
		assert.Equal(t, "Corrupção", name)
		assert.Equal(t, "Instituição: Não informada", info)
	})

	t.Run("domestic violence", func(t *testing.T) {
		victim := "Ana"
		name, info := (&DomesticViolenceDetails{VictimName: &victim}).Summary(nil)
		assert.Equal(t, "Ana", name)
		assert.Equal(t, "Vítima: Ana", info)
	})

	t.Run("cyber crime fallbacks", func(t *testing.T) {
		name, info := (&CyberCrimeDetails{}).Summary(nil)
		assert.Equal(t, "Crime cibernético", name)
		assert.Equal(t, "Tipo: Não informado", info)
	})
}

func TestValidSets(t *testing.T) {
	for _, typ := range ComplaintTypes {
		assert.True(t, typ.Valid())
	}
	assert.False(t, ComplaintType("").Valid())
	assert.False(t, ComplaintType("Missing-Person").Valid())

	for _, s := range Statuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, Status("closed").Valid())
}
