package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/config"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/model"
	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/service"
)

type Bot struct {
	bot           *tele.Bot
	cfg           *config.Config
	userService   *service.UserService
	balanceSvc    *service.BalanceService
	referralSvc   *service.ReferralService
	dailyBonusSvc *service.DailyBonusService
}

func NewBot(
	cfg *config.Config,
	userService *service.UserService,
	balanceSvc *service.BalanceService,
	referralSvc *service.ReferralService,
	dailyBonusSvc *service.DailyBonusService,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Telegram.BotToken,
		Poller: &tele.LongPoller{Timeout: 60 * time.Second},
	}

	bot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := &Bot{
		bot:           bot,
		cfg:           cfg,
		userService:   userService,
		balanceSvc:    balanceSvc,
		referralSvc:   referralSvc,
		dailyBonusSvc: dailyBonusSvc,
	}

	b.registerHandlers()

	return b, nil
}

func (b *Bot) registerHandlers() {
	b.bot.Handle("/start", b.handleStart)
	b.bot.Handle("/balance", b.handleBalance)
	b.bot.Handle("/referral", b.handleReferral)
	b.bot.Handle("/help", b.handleHelp)

	b.bot.Handle(tele.OnCallback, b.handleCallback)
}

func (b *Bot) StartPolling(ctx context.Context) {
	go func() {
		<-ctx.Done()
		b.bot.Stop()
	}()
	b.bot.Start()
}

func (b *Bot) GetBotUsername() string {
	return b.bot.Me.Username
}

func (b *Bot) handleStart(c tele.Context) error {
	user := c.Sender()

	_, isNew, err := b.userService.GetOrCreateUser(context.Background(), service.TelegramUser{
		ID:           user.ID,
		Username:     service.OptionalString(user.Username),
		FirstName:    service.OptionalString(user.FirstName),
		LastName:     service.OptionalString(user.LastName),
		LanguageCode: service.OptionalString(user.LanguageCode),
	})
	if err != nil {
		return err
	}

	// Deep-link referral capture: t.me/<bot>?start=ref_<code>. Attribution
	// only succeeds for fresh accounts, the window check lives in the
	// service.
	payload := c.Message().Payload
	attributed := false
	if isNew && strings.HasPrefix(payload, "ref_") {
		code := strings.TrimPrefix(payload, "ref_")
		if err := b.referralSvc.Attribute(context.Background(), user.ID, code); err == nil {
			attributed = true
		} else {
			log.Printf("[Bot] Referral attribution for user %d failed: %v", user.ID, err)
		}
	}

	text := fmt.Sprintf(`Привет, %s! 👋

🎮 <b>CS2 Cases</b> — открывай кейсы и выводи скины

✅ 100 баллов при регистрации
✅ Ежедневный бонус
✅ Промокоды и рефералы
✅ Вывод предметов по трейд-ссылке

Нажми кнопку ниже, чтобы открыть приложение.`, user.FirstName)

	if attributed {
		text += "\n\n🎁 Тебя пригласил друг! Бонус уже начислен."
	}

	keyboard := &tele.ReplyMarkup{}
	keyboard.Inline(
		keyboard.Row(
			keyboard.WebApp("📱 Открыть приложение", &tele.WebApp{URL: b.cfg.Telegram.WebAppURL}),
		),
		keyboard.Row(
			keyboard.Data("💰 Баланс", "balance"),
			keyboard.Data("🎁 Рефералы", "referral"),
		),
	)

	return c.Send(text, keyboard, tele.ModeHTML)
}

func (b *Bot) handleBalance(c tele.Context) error {
	user := c.Sender()

	balance, err := b.balanceSvc.GetBalance(context.Background(), user.ID)
	if err != nil {
		return c.Send("Откройте приложение через /start, чтобы создать аккаунт.")
	}

	text := fmt.Sprintf(`💰 <b>Баланс: %d баллов</b>

Открывайте кейсы в приложении и получайте ежедневный бонус.`, balance)

	keyboard := &tele.ReplyMarkup{}
	keyboard.Inline(
		keyboard.Row(
			keyboard.WebApp("📱 Открыть приложение", &tele.WebApp{URL: b.cfg.Telegram.WebAppURL}),
		),
	)

	return c.Send(text, keyboard, tele.ModeHTML)
}

func (b *Bot) handleReferral(c tele.Context) error {
	user := c.Sender()

	info, err := b.referralSvc.Info(context.Background(), user.ID)
	if err != nil {
		return c.Send("Откройте приложение через /start, чтобы создать аккаунт.")
	}

	text := fmt.Sprintf(`🎁 <b>Реферальная программа</b>

Приглашай друзей и получай баллы! Друг должен ввести твой код в течение 5 минут после регистрации.

📊 <b>Твоя статистика:</b>
👥 Приглашено: %d

🔗 <b>Твоя ссылка:</b>
<code>%s</code>`,
		info.TotalReferrals,
		info.ReferralLink,
	)

	return c.Send(text, tele.ModeHTML)
}

func (b *Bot) handleHelp(c tele.Context) error {
	text := `📖 <b>Помощь</b>

<b>🎮 Как играть:</b>
1️⃣ Откройте Mini App через /start
2️⃣ Получайте баллы: ежедневный бонус, промокоды, рефералы
3️⃣ Открывайте кейсы
4️⃣ Выводите предметы по трейд-ссылке

<b>📱 Команды:</b>
/start — Главное меню
/balance — Баланс
/referral — Реферальная программа
/help — Эта справка`

	keyboard := &tele.ReplyMarkup{}
	keyboard.Inline(
		keyboard.Row(
			keyboard.WebApp("📱 Открыть приложение", &tele.WebApp{URL: b.cfg.Telegram.WebAppURL}),
		),
	)

	return c.Send(text, keyboard, tele.ModeHTML)
}

func (b *Bot) handleCallback(c tele.Context) error {
	data := c.Callback().Data

	defer c.Respond()

	// telebot prefixes callback data with \f
	switch strings.TrimPrefix(data, "\f") {
	case "balance":
		return b.handleBalance(c)
	case "referral":
		return b.handleReferral(c)
	default:
		log.Printf("[Bot] Unknown callback data: %q", data)
	}
	return nil
}

func (b *Bot) SendMessage(chatID int64, text string) error {
	_, err := b.bot.Send(&tele.User{ID: chatID}, text, tele.ModeHTML)
	return err
}

// NotifyWithdrawal tells the admin chat about a new withdrawal request.
// Implements service.WithdrawalNotifier; failures are logged, never
// propagated.
func (b *Bot) NotifyWithdrawal(request *model.WithdrawalRequest, item *model.InventoryItem) {
	text := fmt.Sprintf(`📦 <b>Новая заявка на вывод</b>

👤 Пользователь: <code>%d</code>
🔫 Предмет: %s (%s)
💎 Цена: %d баллов
🔗 Трейд-ссылка: %s
🆔 Заявка: <code>%s</code>`,
		request.UserID,
		item.ItemName,
		item.ItemRarity,
		item.ItemPrice,
		request.TradeLink,
		request.ID,
	)

	for _, adminID := range b.cfg.Telegram.AdminIDs {
		if err := b.SendMessage(adminID, text); err != nil {
			log.Printf("[Bot] Failed to notify admin %d: %v", adminID, err)
		}
	}
}
