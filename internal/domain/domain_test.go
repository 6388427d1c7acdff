package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	var f Flight
	err := json.Unmarshal([]byte(`{"id":3,"departureDate":"2022-12-01","departureTime":"10:30"}`), &f)
	require.NoError(t, err)
	assert.Equal(t, NewDate(2022, time.December, 1), f.DepartureDate)

	out, err := json.Marshal(f.DepartureDate)
	require.NoError(t, err)
	assert.Equal(t, `"2022-12-01"`, string(out))
}

func TestDate_UnmarshalTimestamp(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2022-12-01T15:04:05Z"`), &d))
	assert.Equal(t, "2022-12-01", d.String())
}

func TestDate_UnmarshalInvalid(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"01.12.2022"`), &d))
}

func TestNewPage(t *testing.T) {
	p := NewPage([]Airline{{ID: 1, Name: "Lufthansa"}}, 2, 10, 21)
	assert.Equal(t, 3, p.LastPage)
	assert.Equal(t, 2, p.PageNumber)

	empty := NewPage[Airline](nil, 1, 10, 0)
	assert.NotNil(t, empty.Data)
	assert.Equal(t, 0, empty.LastPage)

	body, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"pageNumber":1,"pageSize":10,"totalCount":0,"lastPage":0}`, string(body))
}

func TestPrivilegedUser_HasRole(t *testing.T) {
	u := PrivilegedUser{Roles: []string{RoleAdmin}}
	assert.True(t, u.HasRole(RoleAdmin))
	assert.False(t, u.HasRole(RoleSuperAdmin))
}
