package sqlinline

const QListConversations = `--sql 37ebb3bd-d2b6-4b44-9d79-ff5f4c427530
select c.id,
       coalesce((select u.name
                 from participants p
                 join users u on u.id = p.user_id
                 where p.conversation_id = c.id and u.role <> 'admin'
                 limit 1), 'Unknown') as name
from conversations c
order by c.created_at asc;
`

const QSelectLastMessage = `--sql bee3e170-c9a4-4f19-8971-268ec359f7cd
select content, sent_at
from messages
where conversation_id = $1::uuid
order by sent_at desc
limit 1;
`

const QCountUnreadInConversation = `--sql e2a48eb6-7fd6-484e-b235-d2e716376ec7
select count(*)
from messages m
join users u on u.id = m.sender_id
where m.conversation_id = $1::uuid and u.role <> 'admin' and not m.read;
`

const QSelectConversation = `--sql 7a35214e-3da5-4763-86da-92b50157bf2b
select id
from conversations
where id = $1::uuid
limit 1;
`

const QListMessages = `--sql 4ad0e96c-4b31-4691-8a1a-f9a85432b514
select id, sender_id, content, sent_at, read
from messages
where conversation_id = $1::uuid
order by sent_at asc;
`

const QInsertMessage = `--sql 77543649-151f-4ac2-929b-141cf75abe1b
insert into messages (id, conversation_id, sender_id, content, sent_at, read)
values ($1::uuid, $2::uuid, $3::uuid, $4::text, now(), false)
returning sent_at;
`
