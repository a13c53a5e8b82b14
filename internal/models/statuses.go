package models

// AppointmentStatus - статус переговоров по записи
type AppointmentStatus string

const (
	AppointmentStatusPending           AppointmentStatus = "pending"
	AppointmentStatusPriceProposed     AppointmentStatus = "price_proposed"
	AppointmentStatusConfirmed         AppointmentStatus = "confirmed"
	AppointmentStatusRejected          AppointmentStatus = "rejected"
	AppointmentStatusCancelled         AppointmentStatus = "cancelled"
	AppointmentStatusCancelledByClient AppointmentStatus = "cancelled_by_client"
)

// appointmentTransitions - центральная таблица разрешенных переходов.
// Терминальные статусы не имеют исходящих переходов: после них меняются
// только viewed и hidden_by.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending: {
		AppointmentStatusPriceProposed,
		AppointmentStatusRejected,
		AppointmentStatusCancelledByClient,
	},
	AppointmentStatusPriceProposed: {
		AppointmentStatusConfirmed,
		AppointmentStatusCancelled,
		AppointmentStatusCancelledByClient,
	},
	AppointmentStatusConfirmed: {
		AppointmentStatusCancelledByClient,
	},
}

// CanTransition сообщает, разрешен ли переход from -> to
func CanTransition(from, to AppointmentStatus) bool {
	for _, next := range appointmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal сообщает, является ли статус терминальным.
// Статус confirmed сюда намеренно не входит: подтвержденную
// запись все еще можно отменить.
func (s AppointmentStatus) IsTerminal() bool {
	return len(appointmentTransitions[s]) == 0
}

// IsValid сообщает, известен ли статус
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusPending,
		AppointmentStatusPriceProposed,
		AppointmentStatusConfirmed,
		AppointmentStatusRejected,
		AppointmentStatusCancelled,
		AppointmentStatusCancelledByClient:
		return true
	}
	return false
}
