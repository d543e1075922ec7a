package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/social-network/internal/models"
)

// ActivityPublisher публикует события активности в обменник уведомлений.
type ActivityPublisher struct {
	Ch *amqp.Channel
}

// NewActivityPublisher создает новый экземпляр ActivityPublisher.
func NewActivityPublisher(ch *amqp.Channel) *ActivityPublisher {
	return &ActivityPublisher{Ch: ch}
}

// PublishActivity отправляет событие активности с ключом маршрутизации activity.
func (p *ActivityPublisher) PublishActivity(event models.ActivityEvent) error {
	return PublishMessage(p.Ch, ActivityExchange, ActivityRoutingKey, event)
}
