package avito

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentcrm/internal/config"
	"rentcrm/internal/logger"
	"rentcrm/internal/metrics"
)

type Handler struct {
	client *Client
}

func NewHandler(cfg config.AvitoConfig) *Handler {
	return &Handler{client: NewClient(cfg)}
}

// Messages godoc
// @Summary      Import Avito messenger dialogs as leads
// @Description  Pages through all chats of the configured account. When the
// @Description  account subscription does not cover the Messenger API, the
// @Description  response is HTTP 200 with success=false and a hint.
// @Tags         avito
// @Produce      json
// @Success      200  {object}  ImportResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /avito/messages [get]
func (h *Handler) Messages(c *gin.Context) {
	if !h.client.Configured() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Не настроены ключи Avito",
			"message": "Добавьте AVITO_CLIENT_ID, AVITO_CLIENT_SECRET и AVITO_USER_ID",
		})
		return
	}

	ctx := c.Request.Context()

	token, err := h.client.Token(ctx)
	if err != nil {
		metrics.RecordAvitoImport("token_error", 0)
		var se *StatusError
		if errors.As(err, &se) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Не удалось получить токен Avito",
				"details": se.Body,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Ошибка получения токена",
			"message": err.Error(),
		})
		return
	}

	leads, err := h.client.FetchLeads(ctx, token)
	if err != nil {
		var sub *SubscriptionError
		if errors.As(err, &sub) {
			logger.Info("avito import rejected: subscription tier")
			metrics.RecordAvitoImport("subscription_required", 0)
			c.JSON(http.StatusOK, SubscriptionResponse{
				Success:  false,
				Count:    0,
				Leads:    []Lead{},
				Error:    "Для доступа к Messenger API требуется МАКСИМАЛЬНАЯ подписка Avito",
				Hint:     "Обновите подписку на https://www.avito.ru или используйте ручное добавление диалогов",
				APIError: sub.APIError,
			})
			return
		}

		metrics.RecordAvitoImport("error", 0)
		var se *StatusError
		if errors.As(err, &se) {
			c.JSON(se.StatusCode, gin.H{
				"success": false,
				"error":   "Не удалось загрузить диалоги",
				"details": se.Body,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Ошибка загрузки диалогов",
			"message": err.Error(),
		})
		return
	}

	logger.Info("avito import finished", "leads", len(leads))
	metrics.RecordAvitoImport("success", len(leads))

	c.JSON(http.StatusOK, ImportResponse{
		Success: true,
		Count:   len(leads),
		Leads:   leads,
		Demo:    false,
	})
}

// OAuthCallback godoc
// @Summary      Avito OAuth callback
// @Description  Exchanges the authorization code for a refresh token and
// @Description  returns an HTML page that hands the token to the opener window.
// @Tags         avito
// @Produce      html
// @Param        code  query  string  true  "Authorization code"
// @Success      200  {string}  string
// @Failure      400  {object}  map[string]interface{}
// @Router       /avito/oauth/callback [get]
func (h *Handler) OAuthCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Не получен код авторизации от Avito",
		})
		return
	}
	if h.client.cfg.ClientID == "" || h.client.cfg.ClientSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Не настроены ключи Avito",
		})
		return
	}

	refreshToken, err := h.client.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Не удалось получить токен от Avito",
				"details": se.Body,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte(fmt.Sprintf(oauthSuccessPage, refreshToken)))
}

// oauthSuccessPage posts the refresh token to the window that opened the
// OAuth popup, then closes itself.
const oauthSuccessPage = `<!DOCTYPE html>
<html>
<head>
    <title>Avito Authorization Success</title>
    <style>
        body {
            font-family: system-ui, -apple-system, sans-serif;
            display: flex;
            align-items: center;
            justify-content: center;
            min-height: 100vh;
            margin: 0;
            background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%);
        }
        .success-box {
            background: white;
            padding: 2rem;
            border-radius: 1rem;
            box-shadow: 0 20px 60px rgba(0,0,0,0.3);
            text-align: center;
            max-width: 400px;
        }
        .checkmark {
            width: 80px;
            height: 80px;
            border-radius: 50%%;
            background: #10b981;
            margin: 0 auto 1rem;
            display: flex;
            align-items: center;
            justify-content: center;
            font-size: 3rem;
            color: white;
        }
        h1 { color: #1f2937; margin-bottom: 0.5rem; }
        p { color: #6b7280; margin-bottom: 1rem; }
    </style>
</head>
<body>
    <div class="success-box">
        <div class="checkmark">&#10003;</div>
        <h1>Успешно!</h1>
        <p>Avito подключен к вашей CRM</p>
        <p style="font-size: 0.875rem;">Это окно можно закрыть</p>
    </div>
    <script>
        if (window.opener) {
            window.opener.postMessage({
                type: 'avito-oauth-success',
                refresh_token: '%s'
            }, '*');
        }
        setTimeout(() => { window.close(); }, 2000);
    </script>
</body>
</html>
`
