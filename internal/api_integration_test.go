//go:build integration_test || all_tests

package internal_test

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/2beens/rutinas/internal/auth"
	"github.com/2beens/rutinas/internal/dates"
	"github.com/2beens/rutinas/internal/gym"
	"github.com/2beens/rutinas/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestLogin() {
	t := s.T()

	var errResp pkg.ErrorResponse
	resp := s.do("POST", "/auth/login", map[string]string{"nombre": testUsername, "password": "bad"}, &errResp)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Credenciales incorrectas", errResp.Error)

	var me auth.MeResponse
	resp = s.do("GET", "/auth/me", nil, &me)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, me.Authenticated)

	s.login()

	var token string
	endpoint, err := url.Parse(serverEndpoint)
	require.NoError(t, err)
	for _, c := range s.httpClient.Jar.Cookies(endpoint) {
		if c.Name == auth.CookieName {
			token = c.Value
		}
	}
	require.NotEmpty(t, token)

	resp = s.do("GET", "/auth/me", nil, &me)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, me.Authenticated)
	require.NotNil(t, me.Usuario)
	assert.Equal(t, testUsername, me.Usuario.Nombre)

	resp = s.do("DELETE", "/auth/login", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// the old token is revoked even if a client kept it
	req, err := http.NewRequest("POST", serverEndpoint+"/grupos-musculares", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	plainResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer plainResp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, plainResp.StatusCode)
}

func (s *IntegrationTestSuite) TestWritesNeedSession() {
	t := s.T()

	resp := s.do("POST", "/grupos-musculares", map[string]string{"nombre": "Pecho"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.do("GET", "/usuarios", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var groups []gym.MuscleGroup
	resp = s.do("GET", "/grupos-musculares", nil, &groups)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestRoutineWorkflow() {
	t := s.T()
	s.login()

	zone, err := dates.NewZone(testTZ)
	require.NoError(t, err)

	var group gym.MuscleGroup
	resp := s.do("POST", "/grupos-musculares", map[string]string{"nombre": "Piernas"}, &group)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.do("POST", "/grupos-musculares", map[string]string{"nombre": "Piernas"}, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var squat, lunge gym.Exercise
	resp = s.do("POST", "/ejercicios", map[string]any{
		"nombre":          "Sentadilla",
		"grupoMuscularId": fmt.Sprint(group.ID),
	}, &squat)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, squat.GrupoMuscular)
	assert.Equal(t, "Piernas", squat.GrupoMuscular.Nombre)

	resp = s.do("POST", "/ejercicios", map[string]any{
		"nombre":          "Estocada",
		"grupoMuscularId": group.ID,
	}, &lunge)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var routine gym.Routine
	resp = s.do("POST", "/rutinas", map[string]string{
		"fecha":  zone.TodayForInput(),
		"genero": "mujer",
	}, &routine)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.do("GET", "/rutinas/hoy?genero=mujer", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var link gym.RoutineExercise
	resp = s.do("POST", "/rutina-ejercicios", map[string]any{
		"rutinaId":     routine.ID,
		"ejercicioId":  squat.ID,
		"series":       4,
		"repeticiones": 8,
		"orden":        2,
	}, &link)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.do("POST", "/rutina-ejercicios", map[string]any{
		"rutinaId":    routine.ID,
		"ejercicioId": squat.ID,
	}, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = s.do("POST", "/rutina-ejercicios", map[string]any{
		"rutinaId":    routine.ID,
		"ejercicioId": lunge.ID,
		"orden":       1,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// a write must not be hidden by the cached answer
	var today gym.Routine
	resp = s.do("GET", "/rutinas/hoy?genero=mujer", nil, &today)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, today.Ejercicios, 2)
	assert.Equal(t, lunge.ID, today.Ejercicios[0].EjercicioID)
	assert.Equal(t, squat.ID, today.Ejercicios[1].EjercicioID)

	resp = s.do("GET", "/rutinas/hoy?genero=hombre", nil, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var copied gym.Routine
	nextWeek := zone.FormatInput(zone.Now().AddDate(0, 0, 7))
	resp = s.do("POST", fmt.Sprintf("/rutinas/%d", routine.ID), map[string]string{"fecha": nextWeek}, &copied)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEqual(t, routine.ID, copied.ID)
	require.Len(t, copied.Ejercicios, 2)
	assert.Equal(t, lunge.ID, copied.Ejercicios[0].EjercicioID)

	var links []gym.RoutineExercise
	resp = s.do("GET", fmt.Sprintf("/rutina-ejercicios?rutinaId=%d", copied.ID), nil, &links)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, links, 2)

	// restrict on delete
	resp = s.do("DELETE", fmt.Sprintf("/ejercicios/%d", squat.ID), nil, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp = s.do("DELETE", fmt.Sprintf("/grupos-musculares/%d", group.ID), nil, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// cascade on routine delete
	resp = s.do("DELETE", fmt.Sprintf("/rutinas/%d", routine.ID), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = s.do("GET", fmt.Sprintf("/rutina-ejercicios/%d", link.ID), nil, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do("GET", "/rutinas/hoy?genero=mujer", nil, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var all []gym.Routine
	resp = s.do("GET", "/rutinas?fecha="+nextWeek, nil, &all)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, all, 1)
	assert.Equal(t, copied.ID, all[0].ID)
	assert.WithinDuration(t, zone.StartOfDay(zone.Now().AddDate(0, 0, 7)), all[0].Fecha, 24*time.Hour)
}
